// Package providers maintains the catalog of AI models the bot can answer
// with. The catalog is assembled once at startup from the configured
// provider credentials and served through a thread-safe [Registry]; the
// Home Tab dropdown is rendered directly from [Registry.Models].
package providers
