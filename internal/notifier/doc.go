// Package notifier announces newly stored matches.
//
// DryRunNotifier prints the posts to a writer, TwitterNotifier publishes them
// through the Twitter v1.1 API. Both share the same post format, capped at
// the Twitter length limit.
package notifier
