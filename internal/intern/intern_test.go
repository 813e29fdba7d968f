package intern

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInternSharing(t *testing.T) {
	before := Size()

	h1 := Acquire()
	h2 := Acquire()
	s1 := h1.Intern("/proj/app.proj.hcl")
	s2 := h2.Intern("/proj/app.proj.hcl")

	assert.Equal(t, s1, s2)
	assert.Equal(t, before+1, Size())

	h1.Release()
	assert.Equal(t, before+1, Size(), "entry survives while another owner holds it")

	h2.Release()
	assert.Equal(t, before, Size())
}

func TestReleaseIsIdempotent(t *testing.T) {
	before := Size()

	h := Acquire()
	h.Intern("once")
	h.Release()
	h.Release()

	assert.Equal(t, before, Size())
	assert.Equal(t, "after", h.Intern("after"), "a released handle no longer pools")
	assert.Equal(t, before, Size())
}
