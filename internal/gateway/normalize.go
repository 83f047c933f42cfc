package gateway

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// UnmarshalJSON maps every company shape the backend has used onto Company:
//
//	{"company": {"id": 1, "name": "Acme"}}
//	{"company": "Acme"}
//	{"company_name": "Acme", "company_id": 1}
//	{"company_id": 1}
func (i *Internship) UnmarshalJSON(b []byte) error {
	type plain Internship
	var raw struct {
		plain
		Company     json.RawMessage `json:"company"`
		CompanyID   int64           `json:"company_id"`
		CompanyName string          `json:"company_name"`
		CompanyLogo string          `json:"company_logo"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	company, err := normalizeCompany(raw.Company)
	if err != nil {
		return fmt.Errorf("internship %d: %w", raw.ID, err)
	}
	if company.ID == 0 {
		company.ID = raw.CompanyID
	}
	if company.Name == "" {
		company.Name = raw.CompanyName
	}
	if company.Logo == "" {
		company.Logo = raw.CompanyLogo
	}

	*i = Internship(raw.plain)
	i.Company = company
	return nil
}

func normalizeCompany(raw json.RawMessage) (Company, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return Company{}, nil
	}

	switch raw[0] {
	case '"':
		var name string
		if err := json.Unmarshal(raw, &name); err != nil {
			return Company{}, fmt.Errorf("decode company name: %w", err)
		}
		return Company{Name: name}, nil
	case '{':
		var obj struct {
			ID              int64  `json:"id"`
			Name            string `json:"name"`
			CompanyName     string `json:"company_name"`
			Logo            string `json:"logo"`
			CompanyLogo     string `json:"company_logo"`
			ProfileImage    string `json:"profile_image"`
			Location        string `json:"location"`
			CompanyLocation string `json:"company_location"`
		}
		if err := json.Unmarshal(raw, &obj); err != nil {
			return Company{}, fmt.Errorf("decode company: %w", err)
		}
		return Company{
			ID:       obj.ID,
			Name:     firstNonEmpty(obj.CompanyName, obj.Name),
			Logo:     firstNonEmpty(obj.Logo, obj.CompanyLogo, obj.ProfileImage),
			Location: firstNonEmpty(obj.CompanyLocation, obj.Location),
		}, nil
	default:
		return Company{}, fmt.Errorf("unexpected company value %s", raw)
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// decodeList reads either a bare array or an object holding the array under key.
func decodeList(data json.RawMessage, key string, out interface{}) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	if data[0] == '[' {
		return json.Unmarshal(data, out)
	}

	var wrapper map[string]json.RawMessage
	if err := json.Unmarshal(data, &wrapper); err != nil {
		return err
	}
	inner, ok := wrapper[key]
	if !ok {
		return nil
	}
	return json.Unmarshal(inner, out)
}
