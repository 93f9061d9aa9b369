// Package scope implements the authorization decision: mapping an HTTP
// method plus an endpoint's permit list onto required scopes and checking
// them against a token's granted scopes.
package scope
