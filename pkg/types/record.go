// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// CaseRecord holds the fields extracted from one case document. A nil field
// means the value could not be located; it is never conflated with "".
type CaseRecord struct {
	File       string  `json:"file" yaml:"file"`
	ClientName *string `json:"client_name" yaml:"client_name"`
	AgentName  *string `json:"agent_name" yaml:"agent_name"`
	CaseStatus *string `json:"case_status" yaml:"case_status"`
}

// CommissionEntry is one row of the commission-sheet listing, parsed from a
// filename such as "Planilha Comissão Ana Souza (acordo Carlos).pdf".
type CommissionEntry struct {
	File   string `json:"file" yaml:"file"`
	Name   string `json:"name" yaml:"name"`
	Status string `json:"status" yaml:"status"`
	Agent  string `json:"agent" yaml:"agent"`
}

// StatementEntry is one row of the accounting-statement listing, read from
// the statement's text.
type StatementEntry struct {
	File       string `json:"file" yaml:"file"`
	ClientName string `json:"client_name" yaml:"client_name"`
	CaseNumber string `json:"case_number" yaml:"case_number"`
}

// StringPtr returns a pointer to s. It is a convenience for building records.
func StringPtr(s string) *string {
	return &s
}

// Deref returns *p, or "" when p is nil.
func Deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
