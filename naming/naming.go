// Package naming defines how blocks and ports are named.
//
// A name is hierarchical. Elements are separated by dots and each element is
// a capitalized CamelCase word, optionally followed by square-bracket
// indices, as in "Arm.Joint[2].Out[0]".
package naming

import (
	"fmt"
	"strconv"
	"strings"
)

// Named describes an object that has a name.
type Named interface {
	// Name returns the name of the object.
	Name() string
}

// Element is one dot-separated element of a name.
type Element struct {
	Word    string
	Indices []int
}

// Parse splits a name into its elements. It panics if the brackets of an
// element do not match or an index is not an integer.
func Parse(name string) []Element {
	words := strings.Split(name, ".")
	elems := make([]Element, len(words))

	for i, w := range words {
		elems[i] = parseElement(w)
	}

	return elems
}

func parseElement(s string) Element {
	bracketsMustMatch(s)

	parts := strings.Split(s, "[")
	elem := Element{Word: parts[0], Indices: make([]int, 0, len(parts)-1)}

	for _, p := range parts[1:] {
		index, err := strconv.Atoi(strings.TrimSuffix(p, "]"))
		if err != nil {
			panic("index must be an integer")
		}

		elem.Indices = append(elem.Indices, index)
	}

	return elem
}

func bracketsMustMatch(s string) {
	depth := 0

	for _, c := range s {
		switch c {
		case '[':
			depth++
			if depth > 1 {
				panic("brackets must not nest")
			}
		case ']':
			depth--
			if depth < 0 {
				panic("brackets must match")
			}
		}
	}

	if depth != 0 {
		panic("brackets must match")
	}
}

// MustBeValid panics if the name does not follow the naming convention.
func MustBeValid(name string) {
	defer func() {
		if r := recover(); r != nil {
			panic(fmt.Sprintf("name %q is not valid: %v", name, r))
		}
	}()

	for _, elem := range Parse(name) {
		elementMustBeValid(elem)
	}
}

func elementMustBeValid(elem Element) {
	if elem.Word == "" {
		panic("element must not be empty")
	}

	if strings.ContainsAny(elem.Word, "_-\"' ") {
		panic("element must only contain letters and digits")
	}

	if elem.Word[0] < 'A' || elem.Word[0] > 'Z' {
		panic("element must start with a capital letter")
	}
}

// Join appends an element to a parent name.
func Join(parent, elem string) string {
	if parent == "" {
		return elem
	}

	return parent + "." + elem
}

// JoinIndexed appends an indexed element, such as "Out[3]", to a parent
// name.
func JoinIndexed(parent, elem string, index int) string {
	return Join(parent, elem+"["+strconv.Itoa(index)+"]")
}
