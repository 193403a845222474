// FloatQuery - Conversational Query Pipeline for ARGO Ocean Float Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/floatquery

package viz

import (
	"fmt"
	"math"
	"strconv"

	json "github.com/goccy/go-json"
)

// markerLimit caps the labeled positions embedded in the map document.
const markerLimit = 50

// marker is one labeled float position in the map document.
type marker struct {
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
	FloatID  string  `json:"float_id"`
	Date     string  `json:"date"`
	Position string  `json:"position"`
}

// leafletPage is the self-contained map document. Placeholders: center
// latitude, center longitude, polyline [lat, lon] pairs, marker list,
// total point count.
const leafletPage = `<!DOCTYPE html>
<html>
<head>
    <title>ARGO Float Trajectories</title>
    <link rel="stylesheet" href="https://unpkg.com/leaflet@1.9.4/dist/leaflet.css" />
    <script src="https://unpkg.com/leaflet@1.9.4/dist/leaflet.js"></script>
    <style>
        body { margin: 0; padding: 0; }
        #map { height: 100vh; width: 100%%; }
        .float-popup { font-family: Arial, sans-serif; }
        .float-popup h3 { margin: 0 0 5px 0; color: #2c3e50; }
        .float-popup p { margin: 2px 0; color: #7f8c8d; }
    </style>
</head>
<body>
    <div id="map"></div>
    <script>
        // Initialize map
        const map = L.map('map').setView([%[1]s, %[2]s], 6);

        // Add OpenStreetMap tiles
        L.tileLayer('https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png', {
            attribution: '© OpenStreetMap contributors'
        }).addTo(map);

        // Create trajectory polyline
        const trajectory = L.polyline(%[3]s, {
            color: '#e74c3c',
            weight: 3,
            opacity: 0.8
        }).addTo(map);

        // Add markers for each float position
        const markers = %[4]s;
        markers.forEach(marker => {
            const popup = ` + "`" + `
                <div class="float-popup">
                    <h3>${marker.float_id}</h3>
                    <p><strong>Date:</strong> ${marker.date}</p>
                    <p><strong>Position:</strong> ${marker.position}</p>
                </div>
            ` + "`" + `;

            L.marker([marker.lat, marker.lon])
                .addTo(map)
                .bindPopup(popup);
        });

        // Fit map to show all data
        if (trajectory.getLatLngs().length > 0) {
            map.fitBounds(trajectory.getBounds());
        }

        // Add legend
        const legend = L.control({position: 'bottomright'});
        legend.onAdd = function(map) {
            const div = L.DomUtil.create('div', 'info legend');
            div.innerHTML = ` + "`" + `
                <div style="background: white; padding: 10px; border-radius: 5px; box-shadow: 0 0 15px rgba(0,0,0,0.2);">
                    <h4 style="margin: 0 0 5px 0;">ARGO Float Trajectories</h4>
                    <p style="margin: 2px 0;"><span style="color: #e74c3c; font-weight: bold;">━</span> Trajectory Path</p>
                    <p style="margin: 2px 0;"><span style="color: #2c3e50;">●</span> Float Positions</p>
                    <p style="margin: 2px 0; font-size: 12px; color: #7f8c8d;">Total Points: %[5]d</p>
                </div>
            ` + "`" + `;
            return div;
        };
        legend.addTo(map);
    </script>
</body>
</html>`

// mapHTML renders a self-contained Leaflet document for the trajectory.
// Markers come from the same date-ordered points as the polyline, so a
// marker's label always matches the position it sits on. Leaflet takes
// [lat, lng] pairs.
func mapHTML(points []point) string {
	if len(points) == 0 {
		return ""
	}

	var sumLat, sumLon float64
	path := make([][2]float64, len(points))
	for i, p := range points {
		sumLat += p.lat
		sumLon += p.lon
		path[i] = [2]float64{p.lat, p.lon}
	}
	centerLat := formatCoord(sumLat / float64(len(points)))
	centerLon := formatCoord(sumLon / float64(len(points)))

	labeled := points
	if len(labeled) > markerLimit {
		labeled = labeled[:markerLimit]
	}
	markers := make([]marker, len(labeled))
	for i, p := range labeled {
		markers[i] = marker{
			Lat:      p.lat,
			Lon:      p.lon,
			FloatID:  rowString(p.row, "float_id", fmt.Sprintf("Float %d", i+1)),
			Date:     rowString(p.row, "profile_date", "Unknown date"),
			Position: fmt.Sprintf("%s, %s", formatLat(p.lat), formatLon(p.lon)),
		}
	}

	pathJSON, err := json.Marshal(path)
	if err != nil {
		pathJSON = []byte("[]")
	}
	markersJSON, err := json.Marshal(markers)
	if err != nil {
		markersJSON = []byte("[]")
	}
	return fmt.Sprintf(leafletPage, centerLat, centerLon, pathJSON, markersJSON, len(points))
}

// formatCoord prints a map-center coordinate in its shortest exact
// decimal form, safe to splice into the document.
func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatLat(lat float64) string {
	hemi := "N"
	if lat < 0 {
		hemi = "S"
	}
	return fmt.Sprintf("%.3f°%s", math.Abs(lat), hemi)
}

func formatLon(lon float64) string {
	hemi := "E"
	if lon < 0 {
		hemi = "W"
	}
	return fmt.Sprintf("%.3f°%s", math.Abs(lon), hemi)
}
