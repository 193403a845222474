// FloatQuery - Conversational Query Pipeline for ARGO Ocean Float Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/floatquery

package database

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/tomtom215/floatquery/internal/logging"
	"github.com/tomtom215/floatquery/internal/models"
)

const dateLayout = "2006-01-02"

// InsertFloat writes one float record. Existing rows with the same
// float_id are replaced, so fixtures and re-seeding are idempotent.
func (db *DB) InsertFloat(ctx context.Context, f *models.Float) error {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	var deployed, lastProfile any
	if !f.DeploymentDate.IsZero() {
		deployed = f.DeploymentDate.Format(dateLayout)
	}
	if f.LastProfileDate != nil {
		lastProfile = f.LastProfileDate.Format(dateLayout)
	}

	_, err := db.conn.ExecContext(ctx, `INSERT OR REPLACE INTO argo_floats (
		float_id, platform_number, deployment_date, deployment_latitude,
		deployment_longitude, float_type, institution, status,
		last_profile_date, total_profiles
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		f.FloatID, f.PlatformNumber, deployed, f.DeploymentLatitude,
		f.DeploymentLongitude, f.FloatType, f.Institution, f.Status,
		lastProfile, f.TotalProfiles)
	if err != nil {
		return fmt.Errorf("failed to insert float %s: %w", f.FloatID, err)
	}
	return nil
}

// InsertProfile writes one profile record. Measurement arrays are rendered
// as DOUBLE[] literals: the values are produced internally (never user
// input), and inlining them sidesteps list parameter binding in the
// driver. Scalars stay bound.
func (db *DB) InsertProfile(ctx context.Context, p *models.Profile) error {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	var profileTime any
	if p.ProfileTime != "" {
		profileTime = p.ProfileTime
	}

	stmt := fmt.Sprintf(`INSERT OR REPLACE INTO argo_profiles (
		profile_id, float_id, latitude, longitude, profile_date, profile_time,
		pressure, depth, temperature, salinity, dissolved_oxygen, ph_in_situ,
		nitrate, chlorophyll_a, max_pressure, n_levels, data_mode, position_qc, profile_qc
	) VALUES (?, ?, ?, ?, ?, ?, %s, %s, %s, %s, %s, %s, %s, %s, ?, ?, ?, ?, ?)`,
		floatListLiteral(p.Pressure), floatListLiteral(p.Depth),
		floatListLiteral(p.Temperature), floatListLiteral(p.Salinity),
		floatListLiteral(p.DissolvedOxygen), floatListLiteral(p.PHInSitu),
		floatListLiteral(p.Nitrate), floatListLiteral(p.ChlorophyllA))

	_, err := db.conn.ExecContext(ctx, stmt,
		p.ProfileID, p.FloatID, p.Latitude, p.Longitude,
		p.ProfileDate.Format(dateLayout), profileTime,
		p.MaxPressure, p.NLevels, p.DataMode, p.PositionQC, p.ProfileQC)
	if err != nil {
		return fmt.Errorf("failed to insert profile %s: %w", p.ProfileID, err)
	}
	return nil
}

// floatListLiteral renders a DOUBLE[] literal, NULL for an empty slice.
func floatListLiteral(vals []float64) string {
	if len(vals) == 0 {
		return "NULL"
	}
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = strconv.FormatFloat(v, 'f', -1, 64)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Seed dataset shape. Profiles run on the real ARGO ten-day cycle from
// each float's deployment until the common end date.
const (
	seedCycleDays = 10
	seedEndDate   = "2025-06-30"
)

// seedDepths are the measurement levels (meters) every seeded profile
// reports, surface first.
var seedDepths = []float64{0, 10, 20, 50, 100, 200, 500, 1000, 1500, 2000}

// seedFloats places eight floats across the covered Indian Ocean regions.
// IDs share 4-digit prefixes in pairs so similar-ID suggestions have
// something to suggest. Drift values are degrees per cycle.
var seedFloats = []struct {
	id          string
	lat, lon    float64
	driftLat    float64
	driftLon    float64
	deployed    string
	floatType   string
	institution string
	status      string
	bgc         bool
}{
	{"2902745", 15.0, 64.0, 0.012, 0.015, "2019-02-10", "APEX", "INCOIS", "ACTIVE", false},
	{"2902746", 18.5, 66.5, -0.010, 0.012, "2019-08-22", "APEX", "INCOIS", "ACTIVE", true},
	{"2902747", 12.0, 88.0, 0.011, -0.010, "2020-03-15", "ARVOR", "INCOIS", "ACTIVE", false},
	{"2902748", 15.5, 90.5, -0.009, -0.008, "2020-11-02", "ARVOR", "INCOIS", "ACTIVE", true},
	{"5906542", -2.0, 75.0, 0.008, 0.014, "2021-05-18", "NAVIS_A", "CSIRO", "ACTIVE", false},
	{"5906543", 1.5, 80.5, -0.007, 0.013, "2021-12-07", "NAVIS_A", "CSIRO", "ACTIVE", true},
	{"1902055", -35.0, 95.0, -0.006, 0.016, "2022-06-25", "APEX", "CSIRO", "ACTIVE", false},
	{"6903012", 22.0, 61.0, 0.005, -0.007, "2023-01-30", "ARVOR", "Ifremer", "INACTIVE", true},
}

// SeedSampleData loads a deterministic demonstration dataset covering the
// Arabian Sea, Bay of Bengal, equatorial band, and southern Indian Ocean.
// It is a no-op when the store already holds floats.
func (db *DB) SeedSampleData(ctx context.Context) error {
	stats, err := db.Stats(ctx)
	if err != nil {
		return fmt.Errorf("failed to check store before seeding: %w", err)
	}
	if stats.TotalFloats > 0 {
		logging.Debug().Int64("floats", stats.TotalFloats).Msg("Store already populated, skipping seed")
		return nil
	}

	logging.Info().Msg("Seeding demonstration ARGO dataset...")

	end, err := time.Parse(dateLayout, seedEndDate)
	if err != nil {
		return fmt.Errorf("invalid seed end date: %w", err)
	}

	totalProfiles := 0
	for _, sf := range seedFloats {
		deployed, err := time.Parse(dateLayout, sf.deployed)
		if err != nil {
			return fmt.Errorf("invalid deployment date for %s: %w", sf.id, err)
		}

		profiles := buildSeedProfiles(sf.id, sf.lat, sf.lon, sf.driftLat, sf.driftLon, deployed, end, sf.bgc)

		float := &models.Float{
			FloatID:             sf.id,
			PlatformNumber:      sf.id,
			DeploymentDate:      deployed,
			DeploymentLatitude:  sf.lat,
			DeploymentLongitude: sf.lon,
			FloatType:           sf.floatType,
			Institution:         sf.institution,
			Status:              sf.status,
			TotalProfiles:       len(profiles),
		}
		if n := len(profiles); n > 0 {
			last := profiles[n-1].ProfileDate
			float.LastProfileDate = &last
		}

		if err := db.InsertFloat(ctx, float); err != nil {
			return err
		}
		for i := range profiles {
			if err := db.InsertProfile(ctx, &profiles[i]); err != nil {
				return err
			}
		}
		totalProfiles += len(profiles)
	}

	logging.Info().
		Int("floats", len(seedFloats)).
		Int("profiles", totalProfiles).
		Str("through", seedEndDate).
		Msg("Demonstration dataset seeded")

	return nil
}

// buildSeedProfiles generates one float's profile series: ten-day cycles
// from deployment to end, with slow drift plus a small oscillation so
// trajectories look like real eddy-riding floats.
func buildSeedProfiles(floatID string, lat, lon, driftLat, driftLon float64, deployed, end time.Time, bgc bool) []models.Profile {
	var out []models.Profile
	for c := 0; ; c++ {
		date := deployed.AddDate(0, 0, c*seedCycleDays)
		if date.After(end) {
			break
		}

		cf := float64(c)
		pLat := lat + driftLat*cf + 0.4*math.Sin(cf*0.35)
		pLon := lon + driftLon*cf + 0.4*math.Cos(cf*0.28)

		p := models.Profile{
			ProfileID:   fmt.Sprintf("%s_%03d", floatID, c+1),
			FloatID:     floatID,
			Latitude:    round3(pLat),
			Longitude:   round3(pLon),
			ProfileDate: date,
			ProfileTime: fmt.Sprintf("%02d:%02d:00", (c*7)%24, (c*13)%60),
			NLevels:     len(seedDepths),
			PositionQC:  1,
			ProfileQC:   "A",
			DataMode:    "D",
		}
		if date.Year() >= 2024 {
			p.DataMode = "R"
		}

		surfTemp := seedSurfaceTemp(pLat, date.YearDay())
		surfSal := seedSurfaceSalinity(pLat, pLon)
		for _, d := range seedDepths {
			p.Depth = append(p.Depth, d)
			p.Pressure = append(p.Pressure, round2(d*1.02))
			p.Temperature = append(p.Temperature, round2(4.0+(surfTemp-4.0)*math.Exp(-d/300.0)))
			p.Salinity = append(p.Salinity, round2(surfSal+(34.7-surfSal)*math.Min(1, d/1000.0)))
			if bgc {
				p.DissolvedOxygen = append(p.DissolvedOxygen, round2(215.0-0.18*math.Min(d, 900)+0.03*math.Max(0, d-900)))
				p.PHInSitu = append(p.PHInSitu, round2(8.1-0.4*math.Min(1, d/1000.0)))
				p.Nitrate = append(p.Nitrate, round2(0.2+35.8*math.Min(1, d/1200.0)))
				p.ChlorophyllA = append(p.ChlorophyllA, round2(0.05+0.5*math.Exp(-(d-50)*(d-50)/3200.0)))
			}
		}
		p.MaxPressure = p.Pressure[len(p.Pressure)-1]

		out = append(out, p)
	}
	return out
}

// seedSurfaceTemp approximates sea surface temperature by latitude with a
// small seasonal cycle.
func seedSurfaceTemp(lat float64, dayOfYear int) float64 {
	seasonal := 1.5 * math.Sin(2*math.Pi*float64(dayOfYear)/365.0)
	return 29.0 - math.Abs(lat)*0.22 + seasonal
}

// seedSurfaceSalinity approximates surface salinity by basin: the Bay of
// Bengal is freshened by river discharge, the Arabian Sea is evaporation
// dominated.
func seedSurfaceSalinity(lat, lon float64) float64 {
	switch {
	case lon >= 80 && lat >= 5:
		return 33.4
	case lon < 80 && lat >= 10:
		return 36.2
	default:
		return 34.9
	}
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
func round3(v float64) float64 { return math.Round(v*1000) / 1000 }
