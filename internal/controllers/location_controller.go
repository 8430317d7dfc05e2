package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"careconnect/internal/location"
)

// Places is the shared Google client. Wired at startup; replaced by tests.
var Places *location.Client

// LocationAutocomplete proxies address autocomplete suggestions.
func LocationAutocomplete(c *gin.Context) {
	input := c.Query("input")
	if input == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "input is required"})
		return
	}
	c.JSON(http.StatusOK, Places.Autocomplete(input))
}

// LocationDetails resolves a place id to address and coordinates.
func LocationDetails(c *gin.Context) {
	placeID := c.Query("place_id")
	if placeID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "place_id is required"})
		return
	}
	c.JSON(http.StatusOK, Places.PlaceDetails(placeID))
}

// LocationNearby searches places around a "lat,lng" pair.
func LocationNearby(c *gin.Context) {
	loc := c.Query("location")
	if loc == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "location is required"})
		return
	}
	radius := 50000
	if raw := c.Query("radius"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			radius = v
		}
	}
	c.JSON(http.StatusOK, Places.NearbySearch(loc, radius))
}

// LocationGeocode resolves a free-form address to coordinates.
func LocationGeocode(c *gin.Context) {
	address := c.Query("address")
	if address == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "address is required"})
		return
	}
	c.JSON(http.StatusOK, Places.Geocode(address))
}

// LocationDistance computes the travel distance between two addresses.
func LocationDistance(c *gin.Context) {
	origin := c.Query("origin")
	destination := c.Query("destination")
	if origin == "" || destination == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "origin and destination are required"})
		return
	}
	c.JSON(http.StatusOK, Places.Distance(origin, destination))
}
