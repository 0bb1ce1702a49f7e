package domain

import (
	"database/sql/driver"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// UUIDArray scans a postgres uuid[] column into the targeting id sets.
type UUIDArray []uuid.UUID

func (a UUIDArray) Value() (driver.Value, error) {
	return pq.GenericArray{A: []uuid.UUID(a)}.Value()
}

func (a *UUIDArray) Scan(src interface{}) error {
	return pq.GenericArray{A: (*[]uuid.UUID)(a)}.Scan(src)
}

func (a UUIDArray) MarshalJSON() ([]byte, error) {
	if a == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]uuid.UUID(a))
}

func (a UUIDArray) Contains(id uuid.UUID) bool {
	for _, v := range a {
		if v == id {
			return true
		}
	}
	return false
}

// StringArray scans a postgres text[] column.
type StringArray []string

func (a StringArray) Value() (driver.Value, error) {
	return pq.StringArray(a).Value()
}

func (a *StringArray) Scan(src interface{}) error {
	return (*pq.StringArray)(a).Scan(src)
}

func (a StringArray) MarshalJSON() ([]byte, error) {
	if a == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(a))
}
