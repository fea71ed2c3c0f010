package usecase

import (
	"errors"
	"strings"
	"time"

	"blood-donation-api/internal/delivery/dto"
	"blood-donation-api/internal/domain/entity"
)

var ErrPasswordNotAllowed = errors.New("password cannot be changed through this endpoint")

const dateLayout = "2006-01-02"

// newUser builds a user from signup fields and hashes the password.
func newUser(req *dto.SignupRequest) (*entity.User, error) {
	birthDate, err := time.Parse(dateLayout, strings.TrimSpace(req.BirthDate))
	if err != nil {
		return nil, ErrInvalidDateFormat
	}

	gender, err := entity.ParseGender(req.Gender)
	if err != nil {
		return nil, err
	}
	bloodType, err := entity.ParseBloodType(req.BloodType)
	if err != nil {
		return nil, err
	}
	rhesus, err := entity.ParseRhesus(req.Rhesus)
	if err != nil {
		return nil, err
	}

	hashed, err := hashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	return &entity.User{
		NIK:         req.NIK,
		Name:        req.Name,
		Password:    hashed,
		BirthPlace:  req.BirthPlace,
		BirthDate:   birthDate,
		Gender:      gender,
		Job:         req.Job,
		PhoneNumber: req.PhoneNumber,
		WeightKg:    req.WeightKg,
		HeightCm:    req.HeightCm,
		BloodType:   bloodType,
		Rhesus:      rhesus,
		Address:     req.Address,
		NoRT:        req.NoRT,
		NoRW:        req.NoRW,
		Village:     req.Village,
		District:    req.District,
		City:        req.City,
		Province:    req.Province,
	}, nil
}

// profileChanges maps the fields present in req to their column names.
func profileChanges(req *dto.UpdateProfileRequest) (map[string]interface{}, error) {
	if req.Password != nil {
		return nil, ErrPasswordNotAllowed
	}

	changes := map[string]interface{}{}

	setString := func(column string, v *string) {
		if v != nil {
			changes[column] = *v
		}
	}
	setString("nik", req.NIK)
	setString("name", req.Name)
	setString("birth_place", req.BirthPlace)
	setString("job", req.Job)
	setString("phone_number", req.PhoneNumber)
	setString("address", req.Address)
	setString("village", req.Village)
	setString("district", req.District)
	setString("city", req.City)
	setString("province", req.Province)

	if req.BirthDate != nil {
		birthDate, err := time.Parse(dateLayout, strings.TrimSpace(*req.BirthDate))
		if err != nil {
			return nil, ErrInvalidDateFormat
		}
		changes["birth_date"] = birthDate
	}
	if req.Gender != nil {
		gender, err := entity.ParseGender(*req.Gender)
		if err != nil {
			return nil, err
		}
		changes["gender"] = gender
	}
	if req.BloodType != nil {
		bloodType, err := entity.ParseBloodType(*req.BloodType)
		if err != nil {
			return nil, err
		}
		changes["blood_type"] = bloodType
	}
	if req.Rhesus != nil {
		rhesus, err := entity.ParseRhesus(*req.Rhesus)
		if err != nil {
			return nil, err
		}
		changes["rhesus"] = rhesus
	}
	if req.WeightKg != nil {
		changes["weight_kg"] = *req.WeightKg
	}
	if req.HeightCm != nil {
		changes["height_cm"] = *req.HeightCm
	}
	if req.NoRT != nil {
		changes["no_rt"] = *req.NoRT
	}
	if req.NoRW != nil {
		changes["no_rw"] = *req.NoRW
	}

	return changes, nil
}
