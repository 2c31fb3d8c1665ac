package housing

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	common_models "go-crm-leads/internal/common/models"
)

const (
	generalInquiry = "General Inquiry"
	isoLayout      = "2006-01-02T15:04:05.000Z"
	crore          = 10000000
	lakh           = 100000
)

// ProcessLead maps a raw upstream lead into the CRM's canonical shape. Every
// field may be absent; fallbacks are substituted and it never fails.
func ProcessLead(raw RawLead, now time.Time) common_models.CanonicalLead {
	projectName := raw.ProjectName.String()
	locality := raw.LocalityName.String()
	city := raw.CityName.String()

	enquiryFor := projectName
	if enquiryFor == "" {
		enquiryFor = generalInquiry
	}

	return common_models.CanonicalLead{
		ClientName:    raw.LeadName.String(),
		Mobile:        raw.LeadPhone.String(),
		Email:         raw.LeadEmail.String(),
		Configuration: buildConfiguration(raw),
		EnquiryFor:    enquiryFor,
		PropertyType:  firstNonEmpty(raw.PropertyType.String(), raw.CategoryType.String(), raw.ServiceType.String(), common_models.NotSpecified),
		CreatedDate:   createdDate(raw.LeadDate.String(), now),
		Budget:        formatBudget(raw.MinPrice.String(), raw.MaxPrice.String()),
		Area:          firstNonEmpty(locality, city, common_models.NotSpecified),
		Remarks:       buildRemarks(raw),
	}
}

// ProcessLeads maps every raw lead with the same reference time.
func ProcessLeads(raws []RawLead, now time.Time) []common_models.CanonicalLead {
	leads := make([]common_models.CanonicalLead, 0, len(raws))
	for _, raw := range raws {
		leads = append(leads, ProcessLead(raw, now))
	}
	return leads
}

func buildConfiguration(raw RawLead) string {
	var parts []string

	if area := formatAreaRange(raw.MinArea.String(), raw.MaxArea.String()); area != "" {
		parts = append(parts, area)
	}
	if t := firstNonEmpty(raw.ApartmentType.String(), raw.PropertyType.String()); t != "" {
		parts = append(parts, t)
	}
	if b := raw.BuildingName.String(); b != "" {
		parts = append(parts, b)
	}

	if len(parts) == 0 {
		return common_models.NotSpecified
	}
	return strings.Join(parts, ", ")
}

func formatAreaRange(minArea, maxArea string) string {
	lo, hasLo := parsePositive(minArea)
	hi, hasHi := parsePositive(maxArea)
	switch {
	case hasLo && hasHi && lo != hi:
		return fmt.Sprintf("%s-%s sq.ft", trimFloat(lo), trimFloat(hi))
	case hasLo:
		return fmt.Sprintf("%s sq.ft", trimFloat(lo))
	case hasHi:
		return fmt.Sprintf("%s sq.ft", trimFloat(hi))
	}
	return ""
}

// formatBudget renders the price range in lakh/crore units.
func formatBudget(minPrice, maxPrice string) string {
	lo, hasLo := parsePositive(minPrice)
	hi, hasHi := parsePositive(maxPrice)
	switch {
	case hasLo && hasHi && lo == hi:
		return formatPrice(lo)
	case hasLo && hasHi:
		return fmt.Sprintf("%s - %s", formatPrice(lo), formatPrice(hi))
	case hasLo:
		return formatPrice(lo) + "+"
	case hasHi:
		return "Up to " + formatPrice(hi)
	}
	return common_models.NotSpecified
}

func formatPrice(v float64) string {
	switch {
	case v >= crore:
		return fmt.Sprintf("₹%.2f Cr", v/crore)
	case v >= lakh:
		return fmt.Sprintf("₹%.2f L", v/lakh)
	}
	return "₹" + trimFloat(v)
}

func createdDate(epoch string, now time.Time) string {
	if sec, err := strconv.ParseInt(epoch, 10, 64); err == nil && sec > 0 {
		return time.Unix(sec, 0).UTC().Format(isoLayout)
	}
	if f, err := strconv.ParseFloat(epoch, 64); err == nil && f > 0 {
		return time.Unix(int64(f), 0).UTC().Format(isoLayout)
	}
	return now.UTC().Format(isoLayout)
}

func buildRemarks(raw RawLead) string {
	project := firstNonEmpty(raw.ProjectName.String(), "N/A")
	locality := firstNonEmpty(raw.LocalityName.String(), raw.CityName.String(), "N/A")

	remarks := fmt.Sprintf("Housing.com lead - Project: %s, Locality: %s", project, locality)
	if id := raw.ProjectID.String(); id != "" {
		remarks += fmt.Sprintf(" (project id %s)", id)
	}
	return remarks
}

func parsePositive(s string) (float64, bool) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v <= 0 || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

func trimFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
