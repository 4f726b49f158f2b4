package models

import (
	"bytes"
	"strconv"
)

// Flag is a boolean the backend encodes either as true/false or as 0/1
type Flag bool

// UnmarshalJSON accepts true, false, 0, 1, "0" and "1"
func (f *Flag) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(data, `"`)
	switch string(data) {
	case "null", "":
		*f = false
		return nil
	case "true":
		*f = true
		return nil
	case "false":
		*f = false
		return nil
	}
	n, err := strconv.Atoi(string(data))
	if err != nil {
		return err
	}
	*f = n != 0
	return nil
}
