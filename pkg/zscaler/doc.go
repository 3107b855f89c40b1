// Package zscaler provides types, interfaces, and helpers for talking to the
// Zscaler cloud security platform across its product surfaces: the Client
// Connector endpoint-agent API (ZCC), the ZIA admin portal, the ZPA
// private-access API, and the ZPA admin portal.
//
// # Overview
//
// The zscaler package defines the configuration, the error taxonomy, and the
// per-surface service interfaces (ZIAService, ZPAService, ZPAPortalService,
// ZCCService). A concrete implementation is provided by the ztclient package,
// which wires configuration, transport, authentication, and pagination. Most
// consumers should import ztclient to construct a client and then interact
// with the service interfaces exposed here.
//
// Getting a client
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/trace333w/zscaler-api-talkers/pkg/zscaler"
//	  "github.com/trace333w/zscaler-api-talkers/pkg/ztclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//	  cli, err := ztclient.New(&zscaler.Config{
//	    Cloud:           "zscalertwo.net",
//	    ZPAClientID:     "id",
//	    ZPAClientSecret: "secret",
//	    ZPACustomerID:   123456789,
//	  })
//	  if err != nil { log.Fatal(err) }
//
//	  segments, err := cli.ZPA().ListApplicationSegments(ctx)
//	  if err != nil { log.Fatal(err) }
//	  _ = segments
//	}
//
// # Pagination
//
// Listing endpoints aggregate every physical page into a single slice before
// returning. A listing call is all-or-nothing: an error on any page aborts the
// whole call and no partial result is returned. The backends are not
// transactional across pages, so data mutated mid-pagination can surface as
// duplicates or gaps; the client does not deduplicate.
//
// # Authentication
//
// Each surface authenticates once per session and attaches the derived
// headers or cookies to every subsequent request. Re-authentication replaces
// the whole attachment atomically, so long-lived clients can recover from
// expired sessions by calling the service's Authenticate method again.
package zscaler
