package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAppointmentStatus(t *testing.T) {
	tests := []struct {
		raw     string
		want    AppointmentStatus
		wantErr bool
	}{
		{raw: "SCHEDULED", want: AppointmentStatusScheduled},
		{raw: "ATTENDED", want: AppointmentStatusAttended},
		{raw: " MISSED ", want: AppointmentStatusMissed},
		{raw: "attended", wantErr: true},
		{raw: "CANCELLED", wantErr: true},
		{raw: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseAppointmentStatus(tt.raw)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidAppointmentStatus)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseOptionalEnums(t *testing.T) {
	g, err := ParseGender(" female ")
	require.NoError(t, err)
	assert.Equal(t, GenderFemale, *g)

	g, err = ParseGender("")
	require.NoError(t, err)
	assert.Nil(t, g)

	_, err = ParseGender("other")
	assert.ErrorIs(t, err, ErrInvalidGender)

	b, err := ParseBloodType("ab")
	require.NoError(t, err)
	assert.Equal(t, BloodTypeAB, *b)

	_, err = ParseBloodType("C")
	assert.ErrorIs(t, err, ErrInvalidBloodType)

	r, err := ParseRhesus("negative")
	require.NoError(t, err)
	assert.Equal(t, RhesusNegative, *r)

	_, err = ParseRhesus("+")
	assert.ErrorIs(t, err, ErrInvalidRhesus)
}
