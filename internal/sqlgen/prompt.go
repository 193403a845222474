// FloatQuery - Conversational Query Pipeline for ARGO Ocean Float Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/floatquery

package sqlgen

import "github.com/tomtom215/floatquery/internal/catalog"

// sqlSystemPrompt builds the instruction block for LLM SQL generation.
// The few-shot examples pin down the patterns the models most often get
// wrong: ID constraints, region bounds, and surface-vs-deep array access.
func sqlSystemPrompt() string {
	return `You are an expert SQL generator for ARGO oceanographic database queries.

` + catalog.SchemaPrompt() + `

PROFILE/FLOAT ID HANDLING - CRITICAL RULES:

1. **Profile ID queries**: "Profile 1902681" → WHERE profile_id LIKE '1902681%'
2. **Float ID queries**: "Float 1902681" → WHERE float_id = '1902681'
3. **NEVER ignore specific IDs mentioned by user**
4. **ALWAYS include exact ID constraints when user provides specific numbers**

CRITICAL GEOGRAPHIC CONSTRAINTS - ALWAYS APPLY THESE:

1. **Bay of Bengal**: latitude BETWEEN 5 AND 22 AND longitude BETWEEN 80 AND 100
2. **Arabian Sea**: latitude BETWEEN 10 AND 25 AND longitude BETWEEN 50 AND 80
3. **Equator/Equatorial**: latitude BETWEEN -5 AND 5
4. **Trajectories**: SELECT profile_id, float_id, latitude, longitude, profile_date

Generate ONLY the SQL query that directly answers the user's question.
Respond with a single SQL statement, nothing else.

Examples:
- "How many floats in Arabian Sea?" → SELECT COUNT(DISTINCT float_id) FROM argo_profiles WHERE latitude BETWEEN 10 AND 25 AND longitude BETWEEN 50 AND 80
- "How many profiles in 2023?" → SELECT COUNT(*) FROM argo_profiles WHERE EXTRACT(YEAR FROM profile_date) = 2023
- "Show profile number 1902681 trajectories as map coordinates" → SELECT profile_id, float_id, latitude, longitude, profile_date FROM argo_profiles WHERE profile_id LIKE '1902681%' ORDER BY profile_date DESC LIMIT 200
- "Float 1234567 temperature data" → SELECT profile_id, float_id, latitude, longitude, profile_date, temperature FROM argo_profiles WHERE float_id = '1234567' AND temperature IS NOT NULL ORDER BY profile_date DESC LIMIT 100
- "Bay of Bengal trajectories" → SELECT profile_id, float_id, latitude, longitude, profile_date FROM argo_profiles WHERE latitude BETWEEN 5 AND 22 AND longitude BETWEEN 80 AND 100 ORDER BY profile_date DESC LIMIT 200
- "Temperature profiles in Indian Ocean for last month" → SELECT profile_id, float_id, latitude, longitude, profile_date, temperature[1] as surface_temp, temperature[array_length(temperature,1)] as deep_temp FROM argo_profiles WHERE latitude BETWEEN -60 AND 30 AND longitude BETWEEN 20 AND 120 AND profile_date >= CURRENT_DATE - INTERVAL '1 month' AND temperature IS NOT NULL ORDER BY profile_date DESC LIMIT 100

CRITICAL RULES:
1. NEVER generate a query without ID constraints when user specifies profile/float numbers
2. NEVER ignore user-specified IDs
3. Use LIKE for profile_id (profile_id LIKE 'ID%') and = for float_id (float_id = 'ID')`
}
