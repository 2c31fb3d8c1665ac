package models

// CanonicalLead is a third-party lead normalized into the CRM's shape.
// Mobile is kept as received; cleaning happens at insert time.
type CanonicalLead struct {
	ClientName    string `json:"client_name" bson:"client_name"`
	Mobile        string `json:"mobile" bson:"mobile"`
	Email         string `json:"email" bson:"email"`
	Configuration string `json:"configuration" bson:"configuration"`
	EnquiryFor    string `json:"enquiry_for" bson:"enquiry_for"`
	PropertyType  string `json:"property_type" bson:"property_type"`
	CreatedDate   string `json:"created_date" bson:"created_date"`
	Budget        string `json:"budget" bson:"budget"`
	Area          string `json:"area" bson:"area"`
	Remarks       string `json:"remarks" bson:"remarks"`
}

const NotSpecified = "Not specified"
