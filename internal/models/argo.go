// FloatQuery - Conversational Query Pipeline for ARGO Ocean Float Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/floatquery

package models

import "time"

// Float is one ARGO float's deployment record. FloatID is the 7-digit WMO
// platform identifier, stored as text because it is an opaque key, not a
// number.
type Float struct {
	FloatID             string     `json:"float_id"`
	PlatformNumber      string     `json:"platform_number,omitempty"`
	DeploymentDate      time.Time  `json:"deployment_date"`
	DeploymentLatitude  float64    `json:"deployment_latitude"`
	DeploymentLongitude float64    `json:"deployment_longitude"`
	FloatType           string     `json:"float_type,omitempty"`
	Institution         string     `json:"institution,omitempty"`
	Status              string     `json:"status,omitempty"`
	LastProfileDate     *time.Time `json:"last_profile_date,omitempty"`
	TotalProfiles       int        `json:"total_profiles"`
}

// Profile is one vertical measurement cycle reported by a float. The
// measurement slices are parallel per level, ordered surface first; a nil
// slice means the float does not carry that sensor. ProfileTime is an
// optional wall-clock time of day in HH:MM:SS form.
type Profile struct {
	ProfileID       string    `json:"profile_id"`
	FloatID         string    `json:"float_id"`
	Latitude        float64   `json:"latitude"`
	Longitude       float64   `json:"longitude"`
	ProfileDate     time.Time `json:"profile_date"`
	ProfileTime     string    `json:"profile_time,omitempty"`
	Pressure        []float64 `json:"pressure,omitempty"`
	Depth           []float64 `json:"depth,omitempty"`
	Temperature     []float64 `json:"temperature,omitempty"`
	Salinity        []float64 `json:"salinity,omitempty"`
	DissolvedOxygen []float64 `json:"dissolved_oxygen,omitempty"`
	PHInSitu        []float64 `json:"ph_in_situ,omitempty"`
	Nitrate         []float64 `json:"nitrate,omitempty"`
	ChlorophyllA    []float64 `json:"chlorophyll_a,omitempty"`
	MaxPressure     float64   `json:"max_pressure"`
	NLevels         int       `json:"n_levels"`
	DataMode        string    `json:"data_mode,omitempty"`
	PositionQC      int       `json:"position_qc"`
	ProfileQC       string    `json:"profile_qc,omitempty"`
}
