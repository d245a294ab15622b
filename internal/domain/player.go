package domain

import "time"

// AdultAgeYears is the threshold for the derived Over13 flag.
const AdultAgeYears = 13

// Player is a registered account. Over13 is derived from YearOfBirth on every
// write and never trusted from a request.
type Player struct {
	ID            int64   `json:"id,omitempty"`
	FullName      string  `json:"full_name"`
	WhatWeCallYou string  `json:"what_we_call_you"`
	SecurityToken string  `json:"security_token"`
	YearOfBirth   int64   `json:"year_of_birth"`
	Over13        bool    `json:"over_13"`
	Email         string  `json:"email"`
	Mobile        *Mobile `json:"mobile,omitempty"`
}

// RecomputeOver13 derives the Over13 flag from the year of birth.
func (p *Player) RecomputeOver13(now time.Time) {
	p.Over13 = int64(now.Year())-p.YearOfBirth >= AdultAgeYears
}

// Clone returns a deep copy.
func (p *Player) Clone() *Player {
	if p == nil {
		return nil
	}
	c := *p
	c.Mobile = p.Mobile.Clone()
	return &c
}
