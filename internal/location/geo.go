package location

import (
	"encoding/binary"
	"math"

	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/wkb"
)

// EncodePoint packs a lat/lng pair into WKB for storage on a profile row.
// WKB stores coordinates x,y = lng,lat.
func EncodePoint(lat, lng float64) ([]byte, error) {
	p := geom.NewPointFlat(geom.XY, []float64{lng, lat})
	return wkb.Marshal(p, binary.LittleEndian)
}

// DecodePoint unpacks WKB bytes written by EncodePoint. ok is false for empty
// or malformed payloads so callers can skip rows without coordinates.
func DecodePoint(raw []byte) (lat, lng float64, ok bool) {
	if len(raw) == 0 {
		return 0, 0, false
	}
	g, err := wkb.Unmarshal(raw)
	if err != nil {
		return 0, 0, false
	}
	p, isPoint := g.(*geom.Point)
	if !isPoint {
		return 0, 0, false
	}
	coords := p.Coords()
	return coords[1], coords[0], true
}

const earthRadiusKm = 6371.0

// HaversineKm returns the great-circle distance between two coordinates in
// kilometres. Good enough for radius filtering; this is not surveying.
func HaversineKm(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180
	dLng := (lng2 - lng1) * math.Pi / 180
	rLat1 := lat1 * math.Pi / 180
	rLat2 := lat2 * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(rLat1)*math.Cos(rLat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return earthRadiusKm * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}
