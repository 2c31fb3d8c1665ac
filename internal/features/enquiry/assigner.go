package enquiry

import (
	"fmt"
	"os"
	"strings"
	"time"

	"go-crm-leads/internal/config"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// EmployeePools maps an area to the employees who cover it. Default covers
// every area without an entry.
type EmployeePools struct {
	Default []string            `yaml:"default"`
	Areas   map[string][]string `yaml:"areas"`
}

var defaultPools = EmployeePools{
	Default: []string{"EMP001", "EMP002", "EMP003"},
	Areas: map[string][]string{
		"wakad":           {"EMP004", "EMP005"},
		"hinjewadi":       {"EMP004", "EMP006"},
		"baner":           {"EMP007", "EMP008"},
		"kharadi":         {"EMP009", "EMP010"},
		"wagholi":         {"EMP009"},
		"pimple saudagar": {"EMP005", "EMP011"},
	},
}

// EmployeeAssigner spreads leads across an area's pool by the current second.
// It does not guarantee fairness.
type EmployeeAssigner struct {
	pools EmployeePools
	now   func() time.Time
}

// NewEmployeeAssigner loads EMPLOYEE_POOLS_FILE when set, otherwise the
// built-in table.
func NewEmployeeAssigner(cfg *config.Config, logger *zap.Logger) (*EmployeeAssigner, error) {
	pools := defaultPools
	if cfg.EmployeePoolsFile != "" {
		loaded, err := LoadEmployeePools(cfg.EmployeePoolsFile)
		if err != nil {
			return nil, err
		}
		pools = loaded
		logger.Info("Loaded employee pools", zap.String("file", cfg.EmployeePoolsFile), zap.Int("areas", len(pools.Areas)))
	}
	return newAssigner(pools, time.Now), nil
}

func newAssigner(pools EmployeePools, now func() time.Time) *EmployeeAssigner {
	normalized := EmployeePools{
		Default: pools.Default,
		Areas:   make(map[string][]string, len(pools.Areas)),
	}
	for area, emps := range pools.Areas {
		if len(emps) > 0 {
			normalized.Areas[normalizeArea(area)] = emps
		}
	}
	return &EmployeeAssigner{pools: normalized, now: now}
}

// LoadEmployeePools parses a YAML pool table.
func LoadEmployeePools(path string) (EmployeePools, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return EmployeePools{}, fmt.Errorf("failed to read employee pools: %w", err)
	}
	var pools EmployeePools
	if err := yaml.Unmarshal(data, &pools); err != nil {
		return EmployeePools{}, fmt.Errorf("failed to parse employee pools: %w", err)
	}
	if len(pools.Default) == 0 {
		return EmployeePools{}, fmt.Errorf("employee pools: default pool must not be empty")
	}
	return pools, nil
}

// AssignEmployee returns pool[unixSeconds mod len(pool)].
func (a *EmployeeAssigner) AssignEmployee(area string) string {
	pool, ok := a.pools.Areas[normalizeArea(area)]
	if !ok {
		pool = a.pools.Default
	}
	if len(pool) == 0 {
		return ""
	}
	idx := a.now().Unix() % int64(len(pool))
	if idx < 0 {
		idx = -idx
	}
	return pool[idx]
}

func normalizeArea(area string) string {
	return strings.ToLower(strings.Join(strings.Fields(area), " "))
}
