package catalog

// Default returns the built-in workforce reskilling analytics schema.
func Default() Catalog {
	return Catalog{
		Tables: map[string]Table{
			"dim_industry": {
				PrimaryKey: "industry_code",
				Columns: map[string]string{
					"industry_code": "INT4",
					"industry_name": "VARCHAR(500)",
					"sector":        "VARCHAR(500)",
				},
			},
			"dim_local_authority": {
				PrimaryKey: "local_authority_code",
				Columns: map[string]string{
					"local_authority_code": "VARCHAR(500)",
					"local_authority_name": "VARCHAR(500)",
				},
			},
			"dim_occupation": {
				PrimaryKey: "soc_code",
				Columns: map[string]string{
					"soc_code":      "INT4",
					"job_title":     "VARCHAR(500)",
					"industry_code": "INT4",
				},
				ForeignKeys: map[string]string{
					"industry_code": "dim_industry.industry_code",
				},
			},
			"employee_profile": {
				PrimaryKey: "employee_id",
				Columns: map[string]string{
					"employee_id":          "INT8",
					"soc_code":             "INT8",
					"sex":                  "TEXT",
					"qualification":        "TEXT",
					"local_authority_code": "TEXT",
					"age_band":             "TEXT",
					"industry_code":        "INT8",
				},
				ForeignKeys: map[string]string{
					"soc_code":             "dim_occupation.soc_code",
					"industry_code":        "dim_industry.industry_code",
					"local_authority_code": "dim_local_authority.local_authority_code",
				},
			},
			"fact_demographic_automation": {
				Columns: map[string]string{
					"year":          "INT8",
					"sex":           "TEXT",
					"age_band":      "TEXT",
					"qualification": "TEXT",
					"low_risk":      "FLOAT8",
					"medium_risk":   "FLOAT8",
					"high_risk":     "FLOAT8",
					"total":         "INT8",
				},
			},
			"fact_geographic_automation": {
				Columns: map[string]string{
					"year":                      "INT8",
					"local_authority_code":      "TEXT",
					"probability_of_automation": "FLOAT8",
					"low_risk":                  "INT8",
					"medium_risk":               "INT8",
					"high_risk":                 "INT8",
				},
				ForeignKeys: map[string]string{
					"local_authority_code": "dim_local_authority.local_authority_code",
				},
			},
			"fact_industry_automation": {
				Columns: map[string]string{
					"year":                      "INT8",
					"industry_code":             "INT8",
					"probability_of_automation": "FLOAT8",
					"low_risk":                  "INT8",
					"medium_risk":               "INT8",
					"high_risk":                 "INT8",
				},
				ForeignKeys: map[string]string{
					"industry_code": "dim_industry.industry_code",
				},
			},
			"soc_code_skill_training_map": {
				Columns: map[string]string{
					"soc_code":         "INT8",
					"skill_category":   "VARCHAR(100)",
					"training_program": "VARCHAR(255)",
				},
			},
			"workforce_reskilling_cases": {
				PrimaryKey: "case_id",
				Columns: map[string]string{
					"case_id":              "INT8",
					"employee_id":          "INT8",
					"training_program":     "TEXT",
					"certification_earned": "BOOLEAN",
					"start_date":           "DATE",
					"completion_date":      "DATE",
					"soc_code":             "INT8",
					"skill_category":       "VARCHAR(100)",
				},
				ForeignKeys: map[string]string{
					"employee_id": "employee_profile.employee_id",
					"soc_code":    "dim_occupation.soc_code",
				},
			},
			"workforce_reskilling_events": {
				PrimaryKey: "event_id",
				Columns: map[string]string{
					"event_id":          "INT8",
					"case_id":           "INT8",
					"activity":          "TEXT",
					"actor":             "TEXT",
					"skill_category":    "TEXT",
					"score":             "NUMERIC",
					"completion_status": "TEXT",
					"timestamp":         "TIMESTAMP",
				},
				ForeignKeys: map[string]string{
					"case_id": "workforce_reskilling_cases.case_id",
				},
			},
		},
		Relationships: []Relationship{
			{LeftTable: "dim_occupation", LeftColumn: "industry_code", RightTable: "dim_industry", RightColumn: "industry_code"},
			{LeftTable: "employee_profile", LeftColumn: "soc_code", RightTable: "dim_occupation", RightColumn: "soc_code"},
			{LeftTable: "employee_profile", LeftColumn: "industry_code", RightTable: "dim_industry", RightColumn: "industry_code"},
			{LeftTable: "employee_profile", LeftColumn: "local_authority_code", RightTable: "dim_local_authority", RightColumn: "local_authority_code"},
			{LeftTable: "fact_geographic_automation", LeftColumn: "local_authority_code", RightTable: "dim_local_authority", RightColumn: "local_authority_code"},
			{LeftTable: "fact_industry_automation", LeftColumn: "industry_code", RightTable: "dim_industry", RightColumn: "industry_code"},
			{LeftTable: "workforce_reskilling_cases", LeftColumn: "employee_id", RightTable: "employee_profile", RightColumn: "employee_id"},
			{LeftTable: "workforce_reskilling_cases", LeftColumn: "soc_code", RightTable: "dim_occupation", RightColumn: "soc_code"},
			{LeftTable: "workforce_reskilling_events", LeftColumn: "case_id", RightTable: "workforce_reskilling_cases", RightColumn: "case_id"},
		},
	}
}
