package inventory

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"Gin_postgres_redis_lab_inventory/models"
)

var labDigits = regexp.MustCompile(`(\d+)`)

// LabCode derives the short code embedded in component UIDs from a lab's
// display id: the first run of digits with leading zeros stripped
// ("LAB-002" -> "L2"). Labs without digits fall back to the first two
// letters of their name, upper-cased.
func LabCode(lab *models.Lab) string {
	if m := labDigits.FindString(lab.LabID); m != "" {
		n := strings.TrimLeft(m, "0")
		if n == "" {
			n = "1"
		}
		return "L" + n
	}
	name := []rune(lab.Name)
	if len(name) > 2 {
		name = name[:2]
	}
	return strings.ToUpper(string(name))
}

// GenerateUID returns the first unused COM<labcode>-NNN identifier for the
// lab, scanning sequence numbers 1..999 against the used set. When the
// whole range is taken it falls back to a unix-timestamp suffix. A nil lab
// yields "".
func GenerateUID(lab *models.Lab, used map[string]struct{}) string {
	if lab == nil {
		return ""
	}
	code := LabCode(lab)
	for seq := 1; seq <= 999; seq++ {
		uid := fmt.Sprintf("COM%s-%03d", code, seq)
		if _, taken := used[uid]; !taken {
			return uid
		}
	}
	return fmt.Sprintf("COM%s-%d", code, time.Now().UTC().Unix())
}

// UsedUIDs collects the uid values of all known components, across every
// lab (UIDs are globally unique).
func UsedUIDs(components []models.Component) map[string]struct{} {
	used := make(map[string]struct{}, len(components))
	for _, c := range components {
		if c.UID != "" {
			used[c.UID] = struct{}{}
		}
	}
	return used
}
