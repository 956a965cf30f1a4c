package model

import (
	"errors"
	"testing"

	"PassKeeper/internal/common"

	"github.com/stretchr/testify/assert"
)

func TestParseCategory(t *testing.T) {
	c, err := ParseCategory("finance")
	assert.NoError(t, err)
	assert.Equal(t, CategoryFinance, c)

	c, err = ParseCategory("  ")
	assert.NoError(t, err)
	assert.Equal(t, Category(""), c)

	_, err = ParseCategory("Games")
	assert.True(t, errors.Is(err, common.ErrInvalidRecord))
}

func TestCredentialRecord_Validate(t *testing.T) {
	assert.NoError(t, CredentialRecord{Title: "mail"}.Validate())
	assert.NoError(t, CredentialRecord{Title: "bank", Category: CategoryFinance}.Validate())

	err := CredentialRecord{Title: " "}.Validate()
	assert.ErrorIs(t, err, common.ErrInvalidRecord)

	err = CredentialRecord{Title: "x", Category: "Games"}.Validate()
	assert.ErrorIs(t, err, common.ErrInvalidRecord)
}

func TestCredentialRecord_EffectiveCategory(t *testing.T) {
	assert.Equal(t, CategoryOther, CredentialRecord{}.EffectiveCategory())
	assert.Equal(t, CategoryWork, CredentialRecord{Category: CategoryWork}.EffectiveCategory())
}
