package dataset

// Schema describes how the columns of a CSV file map onto a dataset: which
// columns are features, which of those are categorical (and so must be
// one-hot encoded), which column is the protected attribute, and which is
// the label.
type Schema struct {
	Name string
	// Columns lists every column expected in the file, in header order.
	Columns []string
	// Categorical marks feature columns that hold category strings rather
	// than numbers.
	Categorical map[string]bool
	// Protected names the protected attribute column.
	Protected string
	// Privileged is the column value mapped to the privileged group (1).
	Privileged string
	// Label names the class column.
	Label string
	// Favourable is the column value mapped to the favourable outcome (1).
	Favourable string
	// Missing is the value marking a missing field; rows containing it are skipped.
	Missing string
}

// AdultSchema describes the income prediction dataset. The label is whether an
// individual earns over 50k, and sex is the protected attribute with males
// taken as the privileged group.
func AdultSchema() Schema {
	return Schema{
		Name: "adult",
		Columns: []string{
			"age", "workclass", "fnlwgt", "education", "education_num",
			"marital_status", "occupation", "relationship", "race", "sex",
			"capital_gain", "capital_loss", "hours_per_week", "native_country",
			"salary",
		},
		Categorical: map[string]bool{
			"workclass":      true,
			"education":      true,
			"marital_status": true,
			"occupation":     true,
			"relationship":   true,
			"race":           true,
			"native_country": true,
		},
		Protected:  "sex",
		Privileged: "Male",
		Label:      "salary",
		Favourable: ">50K",
		Missing:    "?",
	}
}

// HiringSchema describes the synthetic hiring dataset. Every column is already
// numeric; sex_male is the protected attribute and employed_yes the label.
func HiringSchema() Schema {
	return Schema{
		Name: "hiring",
		Columns: []string{
			"sex_male", "race_white", "years_experience", "referred",
			"gpa", "interview_score", "employed_yes",
		},
		Categorical: map[string]bool{},
		Protected:   "sex_male",
		Privileged:  "1",
		Label:       "employed_yes",
		Favourable:  "1",
	}
}
