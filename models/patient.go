package models

import (
	"time"

	"gorm.io/gorm"
)

type Patient struct {
	gorm.Model
	Name        string     `json:"name"`
	Sex         string     `json:"sex"`
	Age         string     `json:"age"`
	Mobile      string     `json:"mobile" gorm:"index"`
	Email       string     `json:"email"`
	Area        string     `json:"area"`
	Address     string     `json:"address"`
	Pincode     string     `json:"pincode"`
	Occupation  string     `json:"occupation"`
	BloodGroup  string     `json:"bloodgroup"`
	Height      string     `json:"height"`
	Weight      string     `json:"weight"`
	DateOfBirth *time.Time `json:"dateofbirth"`
	ImageURL    string     `json:"image_url"`
}
