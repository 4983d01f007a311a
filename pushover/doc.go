// Package pushover is a client for the Pushover message API.
//
// A Client is bound to one user key and one application token and exposes
// four calls, each performing exactly one HTTP request:
//
//	client, err := pushover.New(userKey, apiToken)
//	if err != nil {
//	    // empty credentials
//	}
//
//	resp, err := client.SendMessage(ctx, "Backup finished",
//	    pushover.WithTitle("nightly"),
//	    pushover.WithPriority(pushover.PriorityHigh),
//	    pushover.WithAttachment("/var/log/backup.png"),
//	)
//
//	resp, err = client.SendEmergencyMessage(ctx, "Disk full",
//	    pushover.WithRetry(60),
//	    pushover.WithExpire(1800),
//	)
//
//	resp, err = client.SendGroupMessage(ctx, "Deploy started", groupKey)
//
//	sounds, err := client.ListSounds(ctx)
//	for id, name := range sounds.Sounds() {
//	    fmt.Println(id, name)
//	}
//
// # Optional fields
//
// Fields are only sent when their option is passed. WithTitle("") sends an
// empty title; leaving WithTitle out sends no title at all. Options are typed:
// WithPriority and WithAttachment are not accepted by SendEmergencyMessage,
// and WithRetry and WithExpire are only accepted by it.
//
// # Errors
//
// Every failure is one of three types, each matching a sentinel with errors.Is:
//
//   - *ValidationError (ErrValidation): bad arguments, returned before any I/O.
//   - *AttachmentError (ErrAttachment): the attachment cannot be read or is too
//     large, returned before the request is sent.
//   - *RequestError (ErrRequest): transport failure or a non-2xx status. It
//     carries the status code and the error list returned by the API.
//
// The client never retries. The retry and expire values of an emergency
// message are instructions for the Pushover servers.
package pushover
