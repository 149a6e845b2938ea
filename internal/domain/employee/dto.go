package employee

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/vetanpay/payroll-backend-go/internal/pkg/validator"
)

type WageStructureRequest struct {
	Basic              decimal.Decimal `json:"basic"`
	DA                 decimal.Decimal `json:"da"`
	RetainingAllowance decimal.Decimal `json:"retaining_allowance"`
	HRA                decimal.Decimal `json:"hra"`
	Conveyance         decimal.Decimal `json:"conveyance"`
	Washing            decimal.Decimal `json:"washing"`
	Attire             decimal.Decimal `json:"attire"`
	Special1           decimal.Decimal `json:"special1"`
	Special2           decimal.Decimal `json:"special2"`
	Special3           decimal.Decimal `json:"special3"`
}

func (w WageStructureRequest) ToWageStructure() WageStructure {
	return WageStructure{
		Basic:              w.Basic,
		DA:                 w.DA,
		RetainingAllowance: w.RetainingAllowance,
		HRA:                w.HRA,
		Conveyance:         w.Conveyance,
		Washing:            w.Washing,
		Attire:             w.Attire,
		Special1:           w.Special1,
		Special2:           w.Special2,
		Special3:           w.Special3,
	}
}

func (w WageStructureRequest) validate(errs validator.ValidationErrors) validator.ValidationErrors {
	components := map[string]decimal.Decimal{
		"basic":               w.Basic,
		"da":                  w.DA,
		"retaining_allowance": w.RetainingAllowance,
		"hra":                 w.HRA,
		"conveyance":          w.Conveyance,
		"washing":             w.Washing,
		"attire":              w.Attire,
		"special1":            w.Special1,
		"special2":            w.Special2,
		"special3":            w.Special3,
	}
	for field, amount := range components {
		if amount.IsNegative() {
			errs = append(errs, validator.ValidationError{Field: field, Message: "must be non-negative, got " + amount.String()})
		}
	}
	return errs
}

type UpsertEmployeeRequest struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Designation string `json:"designation"`
	Division    string `json:"division"`
	Branch      string `json:"branch"`
	Site        string `json:"site"`

	PAN       string `json:"pan"`
	UAN       string `json:"uan"`
	PFNumber  string `json:"pf_number"`
	ESINumber string `json:"esi_number"`

	Wage WageStructureRequest `json:"wage"`

	PFExempt           bool            `json:"pf_exempt"`
	ESIExempt          bool            `json:"esi_exempt"`
	PFHigherWages      bool            `json:"pf_higher_wages"`
	HigherPensionOpted bool            `json:"higher_pension_opted"`
	VPFRate            decimal.Decimal `json:"vpf_rate"`

	DOJ string  `json:"doj"`
	DOL *string `json:"dol,omitempty"`

	PhotoURL       *string         `json:"photo_url,omitempty"`
	ServiceRecords []ServiceRecord `json:"service_records,omitempty"`
}

func (r *UpsertEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{Field: "id", Message: "is required"})
	}
	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "is required"})
	}
	if r.PAN != "" && !validator.IsValidPAN(r.PAN) {
		errs = append(errs, validator.ValidationError{Field: "pan", Message: "must match PAN format AAAAA9999A"})
	}
	if r.UAN != "" && !validator.IsValidUAN(r.UAN) {
		errs = append(errs, validator.ValidationError{Field: "uan", Message: "must be a 12 digit number"})
	}
	if r.ESINumber != "" && !validator.IsValidESINumber(r.ESINumber) {
		errs = append(errs, validator.ValidationError{Field: "esi_number", Message: "must be a 10 or 17 digit number"})
	}
	if r.VPFRate.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "vpf_rate", Message: "must be non-negative"})
	}

	doj, ok := validator.IsValidDate(r.DOJ)
	if !ok {
		errs = append(errs, validator.ValidationError{Field: "doj", Message: "must be a date in YYYY-MM-DD format"})
	}
	if r.DOL != nil {
		dol, ok := validator.IsValidDate(*r.DOL)
		if !ok {
			errs = append(errs, validator.ValidationError{Field: "dol", Message: "must be a date in YYYY-MM-DD format"})
		} else if dol.Before(doj) {
			errs = append(errs, validator.ValidationError{Field: "dol", Message: "must be on or after doj " + r.DOJ})
		}
	}

	errs = r.Wage.validate(errs)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (r *UpsertEmployeeRequest) ToEmployee() Employee {
	doj, _ := time.Parse("2006-01-02", r.DOJ)
	var dol *time.Time
	if r.DOL != nil {
		parsed, err := time.Parse("2006-01-02", *r.DOL)
		if err == nil {
			dol = &parsed
		}
	}

	return Employee{
		ID:                 r.ID,
		Name:               r.Name,
		Designation:        r.Designation,
		Division:           r.Division,
		Branch:             r.Branch,
		Site:               r.Site,
		PAN:                r.PAN,
		UAN:                r.UAN,
		PFNumber:           r.PFNumber,
		ESINumber:          r.ESINumber,
		Wage:               r.Wage.ToWageStructure(),
		PFExempt:           r.PFExempt,
		ESIExempt:          r.ESIExempt,
		PFHigherWages:      r.PFHigherWages,
		HigherPensionOpted: r.HigherPensionOpted,
		VPFRate:            r.VPFRate,
		DOJ:                doj,
		DOL:                dol,
		PhotoURL:           r.PhotoURL,
		ServiceRecords:     r.ServiceRecords,
	}
}

type BulkImportRequest struct {
	Employees []UpsertEmployeeRequest `json:"employees"`
}

func (r *BulkImportRequest) Validate() error {
	var errs validator.ValidationErrors

	if len(r.Employees) == 0 {
		errs = append(errs, validator.ValidationError{Field: "employees", Message: "must contain at least one row"})
	}
	for i := range r.Employees {
		if err := r.Employees[i].Validate(); err != nil {
			if rowErrs, ok := err.(validator.ValidationErrors); ok {
				for _, rowErr := range rowErrs {
					errs = append(errs, validator.ValidationError{
						Field:   "employees[" + r.Employees[i].ID + "]." + rowErr.Field,
						Message: rowErr.Message,
					})
				}
			}
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type WageStructureResponse struct {
	Basic              decimal.Decimal `json:"basic"`
	DA                 decimal.Decimal `json:"da"`
	RetainingAllowance decimal.Decimal `json:"retaining_allowance"`
	HRA                decimal.Decimal `json:"hra"`
	Conveyance         decimal.Decimal `json:"conveyance"`
	Washing            decimal.Decimal `json:"washing"`
	Attire             decimal.Decimal `json:"attire"`
	Special1           decimal.Decimal `json:"special1"`
	Special2           decimal.Decimal `json:"special2"`
	Special3           decimal.Decimal `json:"special3"`
	Gross              decimal.Decimal `json:"gross"`
}

type EmployeeResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Designation string `json:"designation"`
	Division    string `json:"division"`
	Branch      string `json:"branch"`
	Site        string `json:"site"`

	PAN       string `json:"pan"`
	UAN       string `json:"uan"`
	PFNumber  string `json:"pf_number"`
	ESINumber string `json:"esi_number"`

	Wage WageStructureResponse `json:"wage"`

	PFExempt           bool            `json:"pf_exempt"`
	ESIExempt          bool            `json:"esi_exempt"`
	PFHigherWages      bool            `json:"pf_higher_wages"`
	HigherPensionOpted bool            `json:"higher_pension_opted"`
	VPFRate            decimal.Decimal `json:"vpf_rate"`

	DOJ string  `json:"doj"`
	DOL *string `json:"dol,omitempty"`

	PhotoURL       *string         `json:"photo_url,omitempty"`
	ServiceRecords []ServiceRecord `json:"service_records,omitempty"`
}

func ToResponse(e Employee) EmployeeResponse {
	var dol *string
	if e.DOL != nil {
		str := e.DOL.Format("2006-01-02")
		dol = &str
	}

	return EmployeeResponse{
		ID:          e.ID,
		Name:        e.Name,
		Designation: e.Designation,
		Division:    e.Division,
		Branch:      e.Branch,
		Site:        e.Site,
		PAN:         e.PAN,
		UAN:         e.UAN,
		PFNumber:    e.PFNumber,
		ESINumber:   e.ESINumber,
		Wage: WageStructureResponse{
			Basic:              e.Wage.Basic,
			DA:                 e.Wage.DA,
			RetainingAllowance: e.Wage.RetainingAllowance,
			HRA:                e.Wage.HRA,
			Conveyance:         e.Wage.Conveyance,
			Washing:            e.Wage.Washing,
			Attire:             e.Wage.Attire,
			Special1:           e.Wage.Special1,
			Special2:           e.Wage.Special2,
			Special3:           e.Wage.Special3,
			Gross:              e.Wage.Gross(),
		},
		PFExempt:           e.PFExempt,
		ESIExempt:          e.ESIExempt,
		PFHigherWages:      e.PFHigherWages,
		HigherPensionOpted: e.HigherPensionOpted,
		VPFRate:            e.VPFRate,
		DOJ:                e.DOJ.Format("2006-01-02"),
		DOL:                dol,
		PhotoURL:           e.PhotoURL,
		ServiceRecords:     e.ServiceRecords,
	}
}

type BulkImportResponse struct {
	Created int      `json:"created"`
	Merged  int      `json:"merged"`
	IDs     []string `json:"ids"`
}
