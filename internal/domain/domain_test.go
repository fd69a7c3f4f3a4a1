package domain

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidID(t *testing.T) {
	assert.True(t, ValidID("666b5bfd8e3c464090cb69b8"))
	assert.True(t, ValidID(NewID()))
	assert.False(t, ValidID("api_123456"))
	assert.False(t, ValidID("666b5bfd8e3c464090cb69b"))
	assert.False(t, ValidID("666b5bfd8e3c464090cb69bz"))
	assert.False(t, ValidID(""))
}

func TestNextStampStrictlyIncreases(t *testing.T) {
	future := time.Now().Add(time.Hour)
	assert.True(t, NextStamp(future).After(future))

	prev := time.Time{}
	for i := 0; i < 50; i++ {
		next := NextStamp(prev)
		require.True(t, next.After(prev), "iteration %d", i)
		prev = next
	}
}

func TestApplyToMergesOnlySentFields(t *testing.T) {
	salary := 1200.0
	u := User{
		Name:  "Jan",
		Email: "jan@api.pl",
		Contract: &Contract{
			Type:   ContractMandate,
			Salary: &salary,
		},
	}
	orig := u.Clone()

	name := "Adam"
	pos := PositionAccountant
	active := true
	in := UserInput{
		Name:        &name,
		IsActivated: &active,
		Contract:    &ContractInput{Position: &pos},
	}
	in.ApplyTo(&u)

	assert.Equal(t, "Adam", u.Name)
	assert.Equal(t, "jan@api.pl", u.Email)
	assert.True(t, u.IsActivated)
	assert.False(t, u.IsAdmin)
	require.NotNil(t, u.Contract)
	assert.Equal(t, ContractMandate, u.Contract.Type)
	assert.Equal(t, PositionAccountant, u.Contract.Position)
	assert.Equal(t, 1200.0, *u.Contract.Salary)

	// 原记录的 Contract 不受影响
	assert.Empty(t, orig.Contract.Position)
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindNotFound, KindOf(NotFound("x")))
	assert.Equal(t, KindConflict, KindOf(fmt.Errorf("wrap: %w", Conflict("dup"))))
	assert.Equal(t, KindInternal, KindOf(ErrNotFound))

	err := Internal("storage failed", ErrInvalidID)
	assert.ErrorIs(t, err, ErrInvalidID)
	assert.Equal(t, "storage failed", err.Error())
}
