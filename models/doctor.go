package models

import (
	"gorm.io/gorm"
)

type Doctor struct {
	gorm.Model
	Name           string `json:"name"`
	Mobile         string `json:"mobile"`
	Email          string `json:"email"`
	Address        string `json:"address"`
	Specialization string `json:"specialization"`
	ImageURL       string `json:"image_url"`
}
