package domain

// PrincipalKind discriminates the two account shapes the backend can
// authenticate. The tag is fixed at construction time; callers never
// inspect field presence to classify a principal.
type PrincipalKind string

const (
	KindPatient       PrincipalKind = "patient"
	KindPharmacyStaff PrincipalKind = "pharmacy_staff"
)

type Patient struct {
	ID        int64    `json:"id"`
	Email     string   `json:"email"`
	FirstName string   `json:"firstName"`
	LastName  string   `json:"lastName"`
	Roles     []string `json:"roles"`
	ImageURL  string   `json:"imageUrl,omitempty"`
	CreatedAt string   `json:"createdAt,omitempty"`
}

type PharmacyStaffMember struct {
	ID         int64  `json:"id"`
	PharmacyID int64  `json:"pharmacyId"`
	UserID     int64  `json:"userId"`
	Role       string `json:"role"`
	Active     bool   `json:"active"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Email      string `json:"email"`
	CreatedAt  string `json:"createdAt,omitempty"`
	UpdatedAt  string `json:"updatedAt,omitempty"`
}

// Principal is the resolved identity behind a bearer credential. Exactly
// one of Patient or Staff is set, matching Kind.
type Principal struct {
	Kind    PrincipalKind        `json:"kind"`
	Patient *Patient             `json:"patient,omitempty"`
	Staff   *PharmacyStaffMember `json:"staff,omitempty"`
}

// PatientPrincipal wraps a patient account in a tagged principal.
func PatientPrincipal(p Patient) *Principal {
	return &Principal{Kind: KindPatient, Patient: &p}
}

// StaffPrincipal wraps a pharmacy staff account in a tagged principal.
func StaffPrincipal(s PharmacyStaffMember) *Principal {
	return &Principal{Kind: KindPharmacyStaff, Staff: &s}
}

// IsPharmacyStaff reports whether p resolves to a pharmacy staff account.
// Safe to call with a nil principal.
func IsPharmacyStaff(p *Principal) bool {
	return p != nil && p.Kind == KindPharmacyStaff && p.Staff != nil
}

// DashboardPath is the home route for the principal's account type.
func (p *Principal) DashboardPath() string {
	if IsPharmacyStaff(p) {
		return "/pharmacy/dashboard"
	}
	return "/dashboard"
}

// DisplayName returns a human-readable name for menus and the topbar.
func (p *Principal) DisplayName() string {
	switch {
	case p == nil:
		return ""
	case p.Kind == KindPharmacyStaff && p.Staff != nil:
		return p.Staff.FirstName + " " + p.Staff.LastName
	case p.Patient != nil:
		return p.Patient.FirstName + " " + p.Patient.LastName
	}
	return ""
}

// Email returns the login email of either account shape.
func (p *Principal) Email() string {
	switch {
	case p == nil:
		return ""
	case p.Kind == KindPharmacyStaff && p.Staff != nil:
		return p.Staff.Email
	case p.Patient != nil:
		return p.Patient.Email
	}
	return ""
}
