// ABOUTME: Tests for payload shape validation and error message rendering
// ABOUTME: These errors are taxonomy (d): caught before any request is issued

package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_ValidBookPayload(t *testing.T) {
	err := Validate(BookPayload{
		Title: "Dune", Author: "Herbert", Category: "Fiction", Quantity: 3, RegionID: "r1",
	})
	assert.NoError(t, err)
}

func TestValidate_MissingFieldsListed(t *testing.T) {
	err := Validate(BookPayload{Quantity: 1})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "title is required")
	assert.Contains(t, verr.Fields, "author is required")
	assert.Contains(t, verr.Fields, "category is required")
	assert.Contains(t, verr.Fields, "regionID is required")
}

func TestValidate_EmailShape(t *testing.T) {
	err := Validate(LoginPayload{Email: "not-an-email", Password: "x"})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Error(), "email must be a valid email address")
}

func TestValidate_OTPLengthAndDigits(t *testing.T) {
	var verr *ValidationError

	require.ErrorAs(t, Validate(OTPPayload{OTP: "123"}), &verr)
	assert.Contains(t, verr.Error(), "exactly 6 characters")

	require.ErrorAs(t, Validate(OTPPayload{OTP: "12345x"}), &verr)
	assert.Contains(t, verr.Error(), "numeric")

	assert.NoError(t, Validate(OTPPayload{OTP: "123456"}))
}

func TestValidate_DateFormats(t *testing.T) {
	payload := AppointmentPayload{
		LabID: "lab-1", Date: "15/09/2026", Time: "14:00",
		Purpose: "workshop", Participants: 2,
	}

	var verr *ValidationError
	require.ErrorAs(t, Validate(payload), &verr)
	assert.Contains(t, verr.Error(), "date must match format 2006-01-02")

	payload.Date = "2026-09-15"
	assert.NoError(t, Validate(payload))
}

func TestValidate_PasswordMinimum(t *testing.T) {
	err := Validate(RegisterPayload{Name: "Ada", Email: "ada@example.com", Password: "short"})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Error(), "password must be at least 8 characters")
}
