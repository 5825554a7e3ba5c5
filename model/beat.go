package model

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// StringList 自定义类型用于 GORM JSON 字段的自动扫描
type StringList []string

// Scan 实现 sql.Scanner 接口
func (s *StringList) Scan(value interface{}) error {
	return scanJSON(value, s)
}

// Value 实现 driver.Valuer 接口
func (s StringList) Value() (driver.Value, error) {
	if s == nil {
		return nil, nil
	}
	return json.Marshal(s)
}

// Contains reports whether tag is present. Tags are a controlled vocabulary, so
// the comparison is case-sensitive.
func (s StringList) Contains(tag string) bool {
	for _, t := range s {
		if t == tag {
			return true
		}
	}
	return false
}

// FloatList stores waveform bar heights as a JSON column.
type FloatList []float64

// Scan 实现 sql.Scanner 接口
func (f *FloatList) Scan(value interface{}) error {
	return scanJSON(value, f)
}

// Value 实现 driver.Valuer 接口
func (f FloatList) Value() (driver.Value, error) {
	if f == nil {
		return nil, nil
	}
	return json.Marshal(f)
}

func scanJSON(value interface{}, dst interface{}) error {
	var bytes []byte
	switch v := value.(type) {
	case nil:
		return nil
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}
	if len(bytes) == 0 || string(bytes) == "null" {
		return nil
	}
	return json.Unmarshal(bytes, dst)
}

// Beat represents a sellable beat in the storefront catalog.
type Beat struct {
	ID        string     `json:"id" toml:"id" gorm:"primaryKey;size:64"`
	Title     string     `json:"title" toml:"title" gorm:"size:255;not null"`
	Producer  string     `json:"producer" toml:"producer" gorm:"size:255;index"`
	Cover     string     `json:"cover" toml:"cover" gorm:"size:767"`
	BPM       int        `json:"bpm" toml:"bpm"`
	Key       string     `json:"key" toml:"key" gorm:"size:16"`
	Price     float64    `json:"price" toml:"price"`
	Tags      StringList `json:"tags" toml:"tags" gorm:"type:json"`
	Duration  string     `json:"duration" toml:"duration" gorm:"size:16"` // "m:ss"
	Waveform  FloatList  `json:"waveformData" toml:"waveform" gorm:"type:json"`
	Plays     int        `json:"plays" toml:"plays"`
	Likes     int        `json:"likes" toml:"likes"`
	Purchases int        `json:"purchases" toml:"purchases"`

	// Position keeps catalog (insertion) order when loaded from a database.
	Position  int       `json:"-" toml:"-" gorm:"index"`
	CreatedAt time.Time `json:"-" toml:"-"`
	UpdatedAt time.Time `json:"-" toml:"-"`
}

// TableName 指定表名
func (Beat) TableName() string {
	return "beats"
}
