package ctdf

import (
	"fmt"
	"time"
)

type StationID int64

type Station struct {
	ID   StationID `groups:"basic,detailed"`
	Name string    `groups:"basic,detailed"`

	CreationDateTime time.Time `groups:"detailed"`
}

func (s Station) String() string {
	return fmt.Sprintf("%s(%d)", s.Name, s.ID)
}
