package templates

import "sort"

// WelcomeData builds the data map for the welcome email.
func WelcomeData(appName, firstName, email string) map[string]any {
	return map[string]any{
		"AppName":   appName,
		"FirstName": firstName,
		"Email":     email,
	}
}

// ProfileUpdatedData builds the data map for the profile-updated email.
// changed lists field names only, never values.
func ProfileUpdatedData(appName, firstName, email string, changed []string) map[string]any {
	fields := append([]string(nil), changed...)
	sort.Strings(fields)
	return map[string]any{
		"AppName":   appName,
		"FirstName": firstName,
		"Email":     email,
		"Changed":   fields,
	}
}
