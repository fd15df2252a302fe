package signal

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/unitflow/si"
)

type owner struct {
	name string
}

func (o *owner) Name() string {
	return o.name
}

var _ = Describe("Signal", func() {
	It("should set and clear", func() {
		s := Signal[float64]{}
		s.Set(1.5, 10)

		Expect(s.Value()).To(Equal(1.5))
		Expect(s.Timestamp()).To(Equal(Timestamp(10)))

		s.SetValue(2.5)
		s.SetTimestamp(20)
		Expect(s.Value()).To(Equal(2.5))
		Expect(s.Timestamp()).To(Equal(Timestamp(20)))

		s.Clear()
		Expect(s.Value()).To(BeZero())
		Expect(s.Timestamp()).To(BeZero())
	})
})

var _ = Describe("Ports", func() {
	var (
		src *owner
		dst *owner
		out *Output[float64]
		in  *Input[float64]
	)

	BeforeEach(func() {
		src = &owner{name: "Source"}
		dst = &owner{name: "Sink"}

		out = NewOutput[float64](si.Newton)
		out.SetName("Out")
		out.SetOwner(src)

		in = NewInput[float64](si.Newton)
		in.SetName("In")
		in.SetOwner(dst)
	})

	It("should report owner, unit and full name", func() {
		Expect(out.Owner()).To(BeIdenticalTo(src))
		Expect(out.Unit()).To(Equal(si.Newton))
		Expect(FullName(out)).To(Equal("Source.Out"))
		Expect(FullName(NewInput[int](si.Dimensionless))).To(Equal(""))
	})

	It("should allow setting the same owner again", func() {
		Expect(func() { out.SetOwner(src) }).NotTo(Panic())
	})

	It("should not allow moving a port to another owner", func() {
		Expect(func() { out.SetOwner(dst) }).To(Panic())
	})

	It("should read the signal of the connected output", func() {
		Expect(in.Connect(out)).To(Succeed())
		out.Signal().Set(3.0, 7)

		Expect(in.IsConnected()).To(BeTrue())
		Expect(in.Source()).To(BeIdenticalTo(out))
		Expect(in.Signal().Value()).To(Equal(3.0))
		Expect(in.Signal().Timestamp()).To(Equal(Timestamp(7)))
	})

	It("should read the cleared signal of an output that was never driven", func() {
		out.Signal().Set(3.0, 7)
		out.Reset()
		Expect(in.Connect(out)).To(Succeed())

		Expect(in.Signal().Value()).To(BeZero())
		Expect(in.Signal().Timestamp()).To(BeZero())
	})

	It("should reject connecting different units", func() {
		velocity := NewOutput[float64](si.Create(si.Length(1), si.Time(-1)))
		velocity.SetName("Velocity")

		err := in.Connect(velocity)

		var mismatch *UnitMismatchError
		Expect(errors.As(err, &mismatch)).To(BeTrue())
		Expect(mismatch.Input).To(Equal("Sink.In"))
		Expect(mismatch.InputUnit).To(Equal(si.Newton))
		Expect(err.Error()).To(ContainSubstring("m·kg·s^-2"))
		Expect(in.IsConnected()).To(BeFalse())
	})

	It("should not allow connecting twice", func() {
		Expect(in.Connect(out)).To(Succeed())

		Expect(func() { _ = in.Connect(out) }).To(Panic())
	})

	It("should panic when reading an unconnected input", func() {
		Expect(func() { in.Signal() }).To(PanicWith(ContainSubstring("Sink.In")))
	})

	It("should sample the output", func() {
		out.Signal().Set(4.0, 9)

		v, ts := out.Sample()

		Expect(v).To(Equal(4.0))
		Expect(ts).To(Equal(Timestamp(9)))
	})
})
