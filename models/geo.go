package models

import (
	"database/sql/driver"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"math"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// Point is a single geographic coordinate stored in one geometry column.
// On postgres the column is geometry(Point,4326); elsewhere (sqlite in tests)
// it degrades to the EWKT text itself. The API boundary never sees this type:
// caches and maps expose separate latitude/longitude fields.
type Point struct {
	Lng float64
	Lat float64
}

func (Point) GormDataType() string {
	return "geometry"
}

func (Point) GormDBDataType(db *gorm.DB, field *schema.Field) string {
	if db.Dialector.Name() == "postgres" {
		return "geometry(Point,4326)"
	}
	return "text"
}

func (p Point) Value() (driver.Value, error) {
	return fmt.Sprintf("SRID=4326;POINT(%v %v)", p.Lng, p.Lat), nil
}

func (p *Point) Scan(value interface{}) error {
	var raw string
	switch v := value.(type) {
	case nil:
		return nil
	case string:
		raw = v
	case []byte:
		raw = string(v)
	default:
		return fmt.Errorf("cannot scan %T into Point", value)
	}

	// PostGIS renders geometry columns as hex EWKB; sqlite stores the EWKT
	// text the Valuer produced.
	if len(raw) > 0 && raw[0] == '0' {
		return p.scanEWKB(raw)
	}

	// Accept both "SRID=4326;POINT(lng lat)" and plain "POINT(lng lat)".
	if i := strings.IndexByte(raw, ';'); i >= 0 {
		raw = raw[i+1:]
	}
	raw = strings.TrimSpace(raw)
	if !strings.HasPrefix(raw, "POINT(") || !strings.HasSuffix(raw, ")") {
		return fmt.Errorf("malformed point %q", raw)
	}
	raw = strings.TrimSuffix(strings.TrimPrefix(raw, "POINT("), ")")
	if _, err := fmt.Sscanf(raw, "%f %f", &p.Lng, &p.Lat); err != nil {
		return fmt.Errorf("malformed point coordinates %q: %w", raw, err)
	}
	return nil
}

// ewkbSRIDFlag marks an EWKB geometry type as carrying a 4-byte SRID.
const ewkbSRIDFlag = 0x20000000

func (p *Point) scanEWKB(raw string) error {
	data, err := hex.DecodeString(raw)
	if err != nil {
		return fmt.Errorf("malformed point %q: %w", raw, err)
	}
	if len(data) < 21 {
		return fmt.Errorf("truncated ewkb point (%d bytes)", len(data))
	}
	var order binary.ByteOrder = binary.LittleEndian
	if data[0] == 0 {
		order = binary.BigEndian
	}
	gtype := order.Uint32(data[1:5])
	if gtype&0xffff != 1 {
		return fmt.Errorf("unexpected geometry type %#x, want point", gtype)
	}
	offset := 5
	if gtype&ewkbSRIDFlag != 0 {
		offset += 4
	}
	if len(data) < offset+16 {
		return fmt.Errorf("truncated ewkb point (%d bytes)", len(data))
	}
	p.Lng = math.Float64frombits(order.Uint64(data[offset : offset+8]))
	p.Lat = math.Float64frombits(order.Uint64(data[offset+8 : offset+16]))
	return nil
}
