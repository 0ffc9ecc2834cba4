package model

import "time"

type User struct {
	ID          string    `json:"_id,omitempty"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	PhoneNumber string    `json:"phoneNumber,omitempty"`
	AvatarURL   string    `json:"avatarUrl,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

type Address struct {
	ID          string `json:"_id,omitempty"`
	Country     string `json:"country"`
	City        string `json:"city"`
	Address1    string `json:"address1"`
	Address2    string `json:"address2,omitempty"`
	ZipCode     string `json:"zipCode"`
	AddressType string `json:"addressType"`
}

type Profile struct {
	User      User      `json:"user"`
	Addresses []Address `json:"addresses"`
}
