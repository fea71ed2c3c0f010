package entity

import (
	"errors"
	"strings"
)

var (
	ErrInvalidGender            = errors.New("gender must be MALE or FEMALE")
	ErrInvalidBloodType         = errors.New("blood type must be A, B, AB or O")
	ErrInvalidRhesus            = errors.New("rhesus must be POSITIVE or NEGATIVE")
	ErrInvalidAppointmentStatus = errors.New("status must be SCHEDULED, ATTENDED or MISSED")
)

type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
)

type BloodType string

const (
	BloodTypeA  BloodType = "A"
	BloodTypeB  BloodType = "B"
	BloodTypeAB BloodType = "AB"
	BloodTypeO  BloodType = "O"
)

type Rhesus string

const (
	RhesusPositive Rhesus = "POSITIVE"
	RhesusNegative Rhesus = "NEGATIVE"
)

// Optional enum fields are trimmed and upper-cased. An empty value parses to nil.

func ParseGender(raw string) (*Gender, error) {
	v := normalize(raw)
	if v == "" {
		return nil, nil
	}
	g := Gender(v)
	if g != GenderMale && g != GenderFemale {
		return nil, ErrInvalidGender
	}
	return &g, nil
}

func ParseBloodType(raw string) (*BloodType, error) {
	v := normalize(raw)
	if v == "" {
		return nil, nil
	}
	switch b := BloodType(v); b {
	case BloodTypeA, BloodTypeB, BloodTypeAB, BloodTypeO:
		return &b, nil
	default:
		return nil, ErrInvalidBloodType
	}
}

func ParseRhesus(raw string) (*Rhesus, error) {
	v := normalize(raw)
	if v == "" {
		return nil, nil
	}
	r := Rhesus(v)
	if r != RhesusPositive && r != RhesusNegative {
		return nil, ErrInvalidRhesus
	}
	return &r, nil
}

func normalize(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}
