package domain

// extractionRules maps each integration to the payload fields that carry
// identifiers, in output order. This table is the single source of truth for
// identifier extraction.
var extractionRules = map[Integration][]struct {
	field    string
	itemType ItemType
}{
	IntegrationSlack: {
		{field: "user", itemType: ItemTypeUser},
		{field: "channel", itemType: ItemTypeChannel},
	},
	IntegrationTeams: {
		{field: "userId", itemType: ItemTypeUser},
		{field: "channelId", itemType: ItemTypeChannel},
	},
	IntegrationDiscord: {
		{field: "userId", itemType: ItemTypeUser},
		{field: "channelId", itemType: ItemTypeChannel},
	},
	IntegrationGmail: {
		{field: "emailAddress", itemType: ItemTypeUser},
	},
	IntegrationGitHub: {
		{field: "userId", itemType: ItemTypeUser},
		{field: "repoId", itemType: ItemTypeGroup},
	},
}

// ExtractIdentifiers pulls the matchable identifiers out of an event payload.
// Only non-empty string values extract; absent fields, values of other types
// and unknown integrations yield an empty set, never an error. Duplicate
// pairs collapse; output order follows the rule table.
func ExtractIdentifiers(integration Integration, payload map[string]any) []ItemRef {
	rules, ok := extractionRules[integration]
	if !ok {
		return nil
	}
	var out []ItemRef
	for _, rule := range rules {
		value, ok := payload[rule.field].(string)
		if !ok || value == "" {
			continue
		}
		out = append(out, ItemRef{ItemID: value, ItemType: rule.itemType})
	}
	return DedupeItems(out)
}
