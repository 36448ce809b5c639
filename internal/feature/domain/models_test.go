package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolvePrecedence(t *testing.T) {
	override := "override"
	plan := "plan"
	def := "default"

	t.Run("override wins", func(t *testing.T) {
		got := Resolve(&override, &plan, &def)
		assert.Equal(t, &override, got)
	})

	t.Run("plan value wins over default", func(t *testing.T) {
		got := Resolve(nil, &plan, &def)
		assert.Equal(t, &plan, got)
	})

	t.Run("catalog default is the fallback", func(t *testing.T) {
		got := Resolve(nil, nil, &def)
		assert.Equal(t, &def, got)
	})

	t.Run("nothing resolves to nil", func(t *testing.T) {
		assert.Nil(t, Resolve(nil, nil, nil))
	})
}
