// Package validation provides an offline audit of pool configuration data.
// The pools table never runs it; it is a lint for the literal records.
package validation

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/sirupsen/logrus"
	"github.com/yourorg/pools-config/internal/pools"
	"github.com/yourorg/pools-config/internal/types"
)

// poolIDLength is the byte length of a pool id: 20 address bytes, 2 bytes of
// specialization and a 10 byte nonce.
const poolIDLength = 32

// Severity ranks a finding
type Severity string

// Finding severities
const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// GenericRecord is the record name used for findings in the fallback record
const GenericRecord = "generic"

// Finding is one problem in one record
type Finding struct {
	Record   string   `json:"record"`
	Field    string   `json:"field"`
	Value    string   `json:"value"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

func (f Finding) String() string {
	return fmt.Sprintf("%s %s.%s %q: %s", f.Severity, f.Record, f.Field, f.Value, f.Message)
}

// AuditOptions holds configuration for the audit
type AuditOptions struct {
	// ReportEmptyEntries flags empty strings in id lists as cleanup warnings
	ReportEmptyEntries bool
}

// DefaultAuditOptions returns the options used by the server at startup
func DefaultAuditOptions() AuditOptions {
	return AuditOptions{
		ReportEmptyEntries: true,
	}
}

// Table is the read side of pools.Table used by the audit
type Table interface {
	Networks() []types.Network
	Get(types.Network) pools.Pools
	Generic() pools.Pools
}

// Audit checks every record of the table with the default options
func Audit(t Table) []Finding {
	return AuditWithOptions(t, DefaultAuditOptions())
}

// AuditWithOptions checks every record of the table
func AuditWithOptions(t Table, opts AuditOptions) []Finding {
	var findings []Finding
	for _, n := range t.Networks() {
		findings = append(findings, AuditRecord(n.String(), t.Get(n), opts)...)
	}
	findings = append(findings, AuditRecord(GenericRecord, t.Generic(), opts)...)

	logrus.WithFields(logrus.Fields{
		"records":  len(t.Networks()) + 1,
		"findings": len(findings),
	}).Debug("Pools audit complete")

	return findings
}

// AuditRecord checks a single record
func AuditRecord(record string, p pools.Pools, opts AuditOptions) []Finding {
	a := auditor{record: record, opts: opts}

	for _, nick := range pools.Nicknames() {
		if ids, ok := p.IDsMap.IDs(nick); ok {
			a.poolIDs("idsMap."+string(nick), ids)
		}
	}
	a.poolIDs("dynamicFees.gauntlet", p.DynamicFees.Gauntlet)
	a.poolIDs("blockList", p.BlockList)
	a.poolIDs("stable.allowList", p.Stable.AllowList)
	a.poolIDs("investment.allowList", p.Investment.AllowList)
	a.poolIDs("stakable.allowList", p.Stakable.AllowList)

	for _, id := range sortedKeys(p.Metadata) {
		a.poolID("metadata", id)
	}

	a.address("delegateOwner", p.DelegateOwner)
	a.address("zeroAddress", p.ZeroAddress)

	for _, address := range sortedKeys(p.Factories) {
		a.address("factories", address)
		if ft := p.Factories[address]; !ft.Valid() {
			a.add("factories", address, SeverityError, fmt.Sprintf("unknown factory type %q", ft))
		}
	}

	if p.Pagination.PerPage <= 0 || p.Pagination.PerPool <= 0 || p.Pagination.PerPoolInitial <= 0 {
		a.add("pagination", fmt.Sprintf("%+v", p.Pagination), SeverityError, "pagination values must be positive")
	}

	return a.findings
}

// IsPoolID reports whether s is a 0x-prefixed 32 byte hex pool id
func IsPoolID(s string) bool {
	b, err := hexutil.Decode(s)
	return err == nil && len(b) == poolIDLength
}

// IsAddress reports whether s is a 0x-prefixed 20 byte hex address
func IsAddress(s string) bool {
	return strings.HasPrefix(s, "0x") && common.IsHexAddress(s)
}

type auditor struct {
	record   string
	opts     AuditOptions
	findings []Finding
}

func (a *auditor) add(field, value string, sev Severity, msg string) {
	a.findings = append(a.findings, Finding{
		Record:   a.record,
		Field:    field,
		Value:    value,
		Severity: sev,
		Message:  msg,
	})
}

func (a *auditor) poolIDs(field string, ids []string) {
	for _, id := range ids {
		a.poolID(field, id)
	}
}

func (a *auditor) poolID(field, id string) {
	if id == "" {
		if a.opts.ReportEmptyEntries {
			a.add(field, id, SeverityWarning, "empty pool id never matches a pool; remove it")
		}
		return
	}
	if !IsPoolID(id) {
		a.add(field, id, SeverityError, "not a 32 byte hex pool id")
	}
}

func (a *auditor) address(field, address string) {
	if !IsAddress(address) {
		a.add(field, address, SeverityError, "not a 20 byte hex address")
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
