package models

import "fmt"

// SpecificationType is a named attribute category shared by products,
// e.g. "Caudal máximo" measured in "L/min".
type SpecificationType struct {
	ID          uint    `gorm:"primaryKey"`
	Name        string  `gorm:"size:255;not null;uniqueIndex"`
	Description *string `gorm:"type:text"`
	Unit        *string `gorm:"size:50"`
}

func (s SpecificationType) String() string {
	if s.Unit != nil && *s.Unit != "" {
		return fmt.Sprintf("%s (%s)", s.Name, *s.Unit)
	}
	return s.Name
}
