package control

import (
	"errors"
	"reflect"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/unitflow/si"
	"github.com/sarchlab/unitflow/signal"
)

func dirtyOutputs[T any](value T, ports ...*signal.Output[T]) {
	for _, p := range ports {
		p.Signal().Set(value, 99)
	}
}

func expectOwnedBy(owner any, ports []signal.Port) {
	for _, p := range ports {
		Expect(p.Owner()).To(BeIdenticalTo(owner))
	}
}

func expectCleared(ports []signal.Port) {
	for _, p := range ports {
		v, ts := p.(signal.Sampler).Sample()
		Expect(v).To(BeZero())
		Expect(ts).To(BeZero())
	}
}

var _ = Describe("Blockio", func() {
	It("should support blocks without ports", func() {
		b := New("Nothing", None(), None())

		Expect(b.In().Len()).To(Equal(0))
		Expect(b.Out().Shape()).To(Equal(ShapeEmpty))
		Expect(b.Inputs()).To(BeEmpty())
		Expect(b.Outputs()).To(BeEmpty())
		Expect(b.Run).NotTo(Panic())
	})

	It("should own and clear single ports", func() {
		in := SingleInput[float64](si.Newton)
		out := SingleOutput[float64](si.Watt)
		dirtyOutputs(1.0, out.Port())

		b := New("Single", in, out)

		Expect(b.In().Port()).To(BeIdenticalTo(in.Port()))
		Expect(b.In().Shape()).To(Equal(ShapeSingle))
		Expect(b.Out().Port().Unit()).To(Equal(si.Watt))
		Expect(b.Out().Port().Name()).To(Equal("Out"))
		Expect(b.In().Port().Name()).To(Equal("In"))
		expectOwnedBy(b, b.Inputs())
		expectOwnedBy(b, b.Outputs())
		expectCleared(b.Outputs())
	})

	It("should own and clear vectors of ports", func() {
		in := InputVector[float64](3, si.Dimensionless)
		out := OutputVector[float64](2, si.Volt)
		dirtyOutputs(5.0, out.Get(0), out.Get(1))

		b := New("Vectors", in, out)

		Expect(b.In().Len()).To(Equal(3))
		Expect(b.In().Shape()).To(Equal(ShapeVector))
		Expect(b.Out().Get(1).Name()).To(Equal("Out[1]"))
		expectOwnedBy(b, b.Inputs())
		expectOwnedBy(b, b.Outputs())
		expectCleared(b.Outputs())
	})

	It("should own and clear tuples of ports", func() {
		in := InputTuple[float64](si.Newton, si.Metre)
		out := OutputTuple[float64](si.Radian, si.Dimensionless, si.Radian)
		dirtyOutputs(2.0, out.Get(0), out.Get(1), out.Get(2))

		b := New("Tuples", in, out)

		Expect(b.In().Shape()).To(Equal(ShapeTuple))
		Expect(b.In().Get(1).Unit()).To(Equal(si.Metre))
		Expect(b.Out().Get(2).Unit()).To(Equal(si.Radian))
		expectOwnedBy(b, b.Inputs())
		expectOwnedBy(b, b.Outputs())
		expectCleared(b.Outputs())
	})

	It("should access the same port by runtime and constant index", func() {
		b := New("Vectors", InputVector[int](4, si.Second), None())

		for i := 0; i < 4; i++ {
			p, err := b.In().At(i)

			Expect(err).NotTo(HaveOccurred())
			Expect(p).To(BeIdenticalTo(b.In().Get(i)))
		}
	})

	It("should fail runtime indexed access out of range", func() {
		b := New("Controller", None(), OutputVector[float64](2, si.Dimensionless))

		p, err := b.Out().At(2)

		Expect(p).To(BeNil())

		var oob *IndexOutOfBoundsError
		Expect(errors.As(err, &oob)).To(BeTrue())
		Expect(oob.Index).To(Equal(2))
		Expect(oob.Len).To(Equal(2))
		Expect(err.Error()).To(ContainSubstring("Controller"))

		_, err = b.Out().At(-1)
		Expect(err).To(HaveOccurred())
	})

	It("should panic on constant index out of range", func() {
		b := New("Controller", InputTuple[float64](si.Watt, si.Joule), None())

		Expect(func() { b.In().Get(2) }).To(Panic())
	})

	It("should not do anything when run without an algorithm", func() {
		b := New("Idle", None(), OutputVector[float64](3, si.Dimensionless))

		b.Run()

		expectCleared(b.Outputs())
	})

	It("should run the given algorithm", func() {
		in := InputVector[float64](2, si.Dimensionless)
		out := SingleOutput[float64](si.Dimensionless)
		b := New("Sum", in, out, WithAlgorithm(func() {
			a := in.Get(0).Signal()
			c := in.Get(1).Signal()
			out.Port().Signal().Set(a.Value()+c.Value(), a.Timestamp())
		}))

		srcA := signal.NewOutput[float64](si.Dimensionless)
		srcB := signal.NewOutput[float64](si.Dimensionless)
		Expect(b.In().Get(0).Connect(srcA)).To(Succeed())
		Expect(b.In().Get(1).Connect(srcB)).To(Succeed())
		srcA.Signal().Set(1.5, 100)
		srcB.Signal().Set(2.0, 200)

		b.Run()
		b.Run()

		Expect(b.Out().Port().Signal().Value()).To(Equal(3.5))
		Expect(b.Out().Port().Signal().Timestamp()).To(Equal(signal.Timestamp(100)))
	})

	It("should not allow two blocks to own the same ports", func() {
		out := SingleOutput[float64](si.Dimensionless)
		New("First", None(), out)

		Expect(func() { New("Second", None(), out) }).To(Panic())
	})

	It("should panic on invalid names", func() {
		Expect(func() { New("bad name", None(), None()) }).To(Panic())
	})

	It("should give every block an ID", func() {
		a := New("A", None(), None())
		b := New("B", None(), None())

		Expect(a.ID()).NotTo(BeEmpty())
		Expect(a.ID()).NotTo(Equal(b.ID()))
	})

	It("should print itself", func() {
		Expect(New("Gain", None(), None()).String()).To(Equal("Generic block: 'Gain'"))
	})
})

type counter struct {
	*Blockio[Empty, *Single[*signal.Output[int]]]
}

func (c *counter) Run() {
	s := c.Out().Port().Signal()
	s.Set(s.Value()+1, s.Timestamp()+10)
}

var _ = Describe("Derived block", func() {
	It("should replace the algorithm with its own Run", func() {
		injected := false
		c := &counter{
			Blockio: New("Counter", None(), SingleOutput[int](si.Dimensionless),
				WithAlgorithm(func() { injected = true })),
		}

		var b Block = c
		b.Run()
		b.Run()

		Expect(injected).To(BeFalse())
		Expect(c.Out().Port().Signal().Value()).To(Equal(2))
		Expect(c.Out().Port().Signal().Timestamp()).To(Equal(signal.Timestamp(20)))
	})
})

var _ = Describe("Owner of a derived block", func() {
	It("should be the derived block when given", func() {
		c := &counter{}
		c.Blockio = New("Counter", None(), SingleOutput[int](si.Dimensionless),
			WithOwner(c))

		expectOwnedBy(c, c.Outputs())

		c.Out().Port().Owner().(Block).Run()
		Expect(c.Out().Port().Signal().Value()).To(Equal(1))
	})
})

var _ = Describe("Copy guard", func() {
	DescribeTable("should be the first field of blocks",
		func(block any) {
			t := reflect.TypeOf(block).Elem()
			Expect(t.Field(0).Type).To(Equal(reflect.TypeOf(noCopy{})))
		},
		Entry("Blockio", &Blockio[Empty, Empty]{}),
		Entry("Mul", &Mul[float64]{}),
		Entry("DeMux", &DeMux[float64]{}),
	)
})

var _ = Describe("Port sets", func() {
	It("should require at least two ports for vectors and tuples", func() {
		Expect(func() { InputVector[float64](1, si.Dimensionless) }).To(Panic())
		Expect(func() { OutputTuple[float64](si.Watt) }).To(Panic())
		Expect(func() { Outputs[float64]() }).To(Panic())
	})

	It("should require equal units in a vector", func() {
		Expect(func() {
			NewVector(
				signal.NewInput[float64](si.Watt),
				signal.NewInput[float64](si.Volt))
		}).To(Panic())
	})

	It("should require different units in a tuple", func() {
		Expect(func() { InputTuple[float64](si.Watt, si.Watt) }).To(Panic())
	})

	It("should select the shape from the units", func() {
		Expect(Outputs[float64](si.Watt, si.Watt).Shape()).To(Equal(ShapeVector))
		Expect(Outputs[float64](si.Watt, si.Volt).Shape()).To(Equal(ShapeTuple))
		Expect(Inputs[float64](si.Uniform(3)...).Shape()).To(Equal(ShapeVector))
		Expect(Inputs[float64](si.Radian, si.Dimensionless).Shape()).To(Equal(ShapeTuple))
	})

	It("should name shapes", func() {
		Expect(ShapeEmpty.String()).To(Equal("empty"))
		Expect(ShapeSingle.String()).To(Equal("single"))
		Expect(ShapeVector.String()).To(Equal("vector"))
		Expect(ShapeTuple.String()).To(Equal("tuple"))
		Expect(Shape(7).String()).To(Equal("Shape(7)"))
	})
})
