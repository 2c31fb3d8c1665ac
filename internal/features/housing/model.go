package housing

import (
	"bytes"
	"encoding/json"
	"strings"
)

// FlexString decodes a JSON string, number or null into a string. The
// upstream API is not consistent about quoting numeric fields.
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		// Booleans and objects carry no usable value for these fields.
		*f = ""
		return nil
	}
	*f = FlexString(n.String())
	return nil
}

func (f FlexString) String() string {
	return strings.TrimSpace(string(f))
}

// RawLead is a lead record as returned by the Housing.com builder-leads API.
// It only lives for one fetch-and-map cycle.
type RawLead struct {
	LeadName      FlexString `json:"lead_name"`
	LeadPhone     FlexString `json:"lead_phone"`
	LeadEmail     FlexString `json:"lead_email,omitempty"`
	ProjectID     FlexString `json:"project_id,omitempty"`
	ProjectName   FlexString `json:"project_name,omitempty"`
	LocalityName  FlexString `json:"locality_name,omitempty"`
	CityName      FlexString `json:"city_name,omitempty"`
	LeadDate      FlexString `json:"lead_date,omitempty"`
	MinArea       FlexString `json:"min_area,omitempty"`
	MaxArea       FlexString `json:"max_area,omitempty"`
	MinPrice      FlexString `json:"min_price,omitempty"`
	MaxPrice      FlexString `json:"max_price,omitempty"`
	PropertyType  FlexString `json:"property_type,omitempty"`
	ServiceType   FlexString `json:"service_type,omitempty"`
	CategoryType  FlexString `json:"category_type,omitempty"`
	ApartmentType FlexString `json:"apartment_type,omitempty"`
	BuildingName  FlexString `json:"building_name,omitempty"`
}

// envelope is the object form of the response. The API may also answer with
// a bare array of leads.
type envelope struct {
	Status  *FlexString     `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}
