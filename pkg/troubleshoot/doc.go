// Package troubleshoot delivers catalog-loading error digests to the
// operations team.
//
// The catalog loader forwards one aggregated report per load cycle when any
// configuration errors were collected. This package provides the delivery
// side: an email notifier backed by Postmark for production, and a
// log-backed notifier for environments without outbound email.
//
//	var cfg troubleshoot.Config
//	config.MustLoad(&cfg)
//
//	notifier, err := troubleshoot.New(cfg)
//	loader, err := catalog.NewLoader(owner, source, builder,
//	    catalog.WithNotifier(notifier))
//
// Delivery failures are returned to the caller; the loader downgrades them
// to an error log so a broken mail path never masks the original report.
package troubleshoot
