// FloatQuery - Conversational Query Pipeline for ARGO Ocean Float Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/floatquery

package catalog

// Table names referenced by generated SQL and LLM prompts. The literal
// names are part of the external contract; deterministic templates and
// few-shot examples embed them.
const (
	TableProfiles = "argo_profiles"
	TableFloats   = "argo_floats"
)

// arrayColumns are the argo_profiles columns that store per-level
// measurement arrays. Index 1 is the surface sample.
var arrayColumns = []string{
	"pressure",
	"depth",
	"temperature",
	"salinity",
	"dissolved_oxygen",
	"ph_in_situ",
	"nitrate",
	"chlorophyll_a",
}

// ArrayColumns returns the measurement array column names. The returned
// slice is shared; treat it as read-only.
func ArrayColumns() []string {
	return arrayColumns
}

// schemaPrompt is the schema description given to the LLM when it writes
// SQL. Column names, region bounds, and units here must track the real
// schema; the model copies them verbatim into queries.
const schemaPrompt = `Database Schema for ARGO Oceanographic Data:

Table: argo_floats
- float_id (text, PRIMARY KEY) - Unique identifier for each ARGO float
- platform_number (text) - Platform number identifier
- deployment_date (date) - When float was deployed
- deployment_latitude (real) - Deployment latitude
- deployment_longitude (real) - Deployment longitude
- float_type (text) - Type of ARGO float
- institution (text) - Operating institution
- status (text) - Current status (ACTIVE, INACTIVE, etc.)
- last_profile_date (date) - Date of most recent profile
- total_profiles (integer) - Total number of profiles collected

Table: argo_profiles
- profile_id (text, PRIMARY KEY) - Unique profile identifier
- float_id (text) - References argo_floats.float_id
- latitude (real) - Profile location latitude
- longitude (real) - Profile location longitude
- profile_date (date) - Date profile was collected
- profile_time (time) - Time profile was collected
- pressure (real[]) - Array of pressure measurements (dbar)
- depth (real[]) - Array of depth measurements (meters)
- temperature (real[]) - Array of temperature measurements (°C)
- salinity (real[]) - Array of salinity measurements (PSU)
- dissolved_oxygen (real[]) - Array of oxygen measurements (μmol/kg)
- ph_in_situ (real[]) - Array of pH measurements
- nitrate (real[]) - Array of nitrate measurements (μmol/kg)
- chlorophyll_a (real[]) - Array of chlorophyll measurements (mg/m³)
- max_pressure (real) - Maximum pressure in profile
- n_levels (integer) - Number of measurement levels

Geographic Regions:
- Arabian Sea: latitude 10-25°N, longitude 50-80°E
- Bay of Bengal: latitude 5-22°N, longitude 80-100°E
- Indian Ocean: latitude -60-30°N, longitude 20-120°E
- Equatorial: latitude -5-5°N, any longitude
- Southern Ocean: latitude <-60°N, any longitude`

// SchemaPrompt returns the schema description injected into LLM prompts.
func SchemaPrompt() string {
	return schemaPrompt
}
