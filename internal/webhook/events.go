package webhook

import "time"

// organizationPayload is the event body for organization.* events.
type organizationPayload struct {
	ID             string         `json:"id"`
	Name           string         `json:"name"`
	PublicMetadata map[string]any `json:"public_metadata"`
}

type eventEnvelope struct {
	Type string              `json:"type"`
	Data organizationPayload `json:"data"`
}

// metadataColumns maps datastore columns to their metadata keys, tested
// in order: the first value with an acceptable type wins, regardless of
// whether the source used snake_case or camelCase.
var metadataColumns = []struct {
	column  string
	aliases []string
}{
	{"legal_name", []string{"legal_name", "legalName"}},
	{"primary_email", []string{"primary_email", "primaryEmail"}},
	{"primary_phone", []string{"primary_phone", "primaryPhone"}},
	{"address_line1", []string{"address_line1", "addressLine1"}},
	{"address_line2", []string{"address_line2", "addressLine2"}},
	{"city", []string{"city"}},
	{"state", []string{"state"}},
	{"zip_code", []string{"zip_code", "zipCode"}},
	{"country", []string{"country"}},
	{"is_provider", []string{"is_provider", "isProvider"}},
	{"is_broker", []string{"is_broker", "isBroker"}},
	{"currency", []string{"currency"}},
	{"default_billing_terms", []string{"default_billing_terms", "defaultBillingTerms"}},
	{"active", []string{"active"}},
	{"plan_id", []string{"plan_id", "planId"}},
	{"billing_anchor_day", []string{"billing_anchor_day", "billingAnchorDay"}},
}

// extractOrganizationData builds the column updates carried by an event.
// Values that fail the type check are dropped, not propagated as errors.
func extractOrganizationData(data organizationPayload, now time.Time) map[string]any {
	updates := map[string]any{
		"name":       data.Name,
		"updated_at": now,
	}

	for _, entry := range metadataColumns {
		for _, alias := range entry.aliases {
			value, ok := data.PublicMetadata[alias]
			if !ok {
				continue
			}
			if accepted, ok := acceptValue(entry.column, value); ok {
				updates[entry.column] = accepted
				break
			}
		}
	}

	return updates
}

// acceptValue admits a metadata value only when its runtime type
// matches the target column: bool for the flag columns, float64 for the
// numeric ones, non-empty string for everything else.
func acceptValue(column string, value any) (any, bool) {
	switch column {
	case "is_provider", "is_broker", "active":
		cast, ok := value.(bool)
		return cast, ok
	case "billing_anchor_day":
		cast, ok := value.(float64)
		if !ok {
			return nil, false
		}
		day := int(cast)
		if day < 1 || day > 28 {
			return nil, false
		}
		return day, true
	case "default_billing_terms":
		cast, ok := value.(float64)
		if !ok {
			return nil, false
		}
		return int(cast), true
	default:
		cast, ok := value.(string)
		if !ok || cast == "" {
			return nil, false
		}
		return cast, true
	}
}
