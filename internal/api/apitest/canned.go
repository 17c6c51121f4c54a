// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package apitest

import (
	"net/http"
	"strings"
)

type cannedTopic struct {
	keywords    []string
	answer      string
	suggestions []string
}

var cannedTopics = []cannedTopic{
	{
		keywords: []string{"insat", "3d"},
		answer: "**INSAT-3D** is an advanced meteorological satellite of India, " +
			"carrying a 6-channel imager and a 19-channel sounder for atmospheric profiling.",
		suggestions: []string{"INSAT-3D imager channels", "INSAT-3DR", "Satellite imagery"},
	},
	{
		keywords: []string{"cyclone", "storm"},
		answer: "Cyclone tracks are derived from geostationary imagery and scatterometer winds. " +
			"MOSDAC publishes near real-time cyclone products during active events.",
		suggestions: []string{"Cyclone tracking", "Scatterometer winds", "Weather data"},
	},
	{
		keywords: []string{"ocean", "sea"},
		answer: "Oceanographic products include sea surface temperature, ocean colour " +
			"and significant wave height from Oceansat and SCATSAT missions.",
		suggestions: []string{"Oceanographic satellites", "Sea surface temperature", "Ocean colour"},
	},
	{
		keywords: []string{"weather", "meteorolog", "rain"},
		answer: "Meteorological data on MOSDAC covers rainfall estimates, outgoing longwave " +
			"radiation, cloud motion vectors and atmospheric soundings.",
		suggestions: []string{"Meteorological data", "Rainfall estimates", "INSAT-3D"},
	},
	{
		keywords: []string{"mosdac", "mission"},
		answer: "MOSDAC is the Meteorological and Oceanographic Satellite Data Archival Centre " +
			"of ISRO, hosting data from Indian earth observation missions.",
		suggestions: []string{"MOSDAC mission", "Data access", "Satellite imagery"},
	},
}

// CannedAnswer answers a handful of topics and rejects blank queries the
// way the real server does.
func CannedAnswer(query string) Reply {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return AskError(http.StatusBadRequest, EmptyQueryText)
	}
	for _, topic := range cannedTopics {
		for _, kw := range topic.keywords {
			if strings.Contains(q, kw) {
				return AskOK(topic.answer, topic.suggestions...)
			}
		}
	}
	return AskOK("I could not find information about \""+strings.TrimSpace(query)+
		"\" in the MOSDAC knowledge base. Try asking about satellites, meteorology, or oceanography.",
		"INSAT-3D", "Weather data", "Oceanographic satellites")
}
