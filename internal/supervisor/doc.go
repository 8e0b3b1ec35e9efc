// Marquee - Movie Search and Content-Based Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package supervisor runs Marquee's long-lived services under a suture v4
supervisor tree.

	RootSupervisor ("marquee")
	├── PipelineSupervisor ("pipeline-layer")
	│   └── RebuildService (if REBUILD_ENABLED)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

Services that return an error are restarted with suture's failure
threshold, decay and backoff. Supervisor events are logged through
sutureslog into the zerolog-backed slog handler from the logging package.

Usage:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger("supervisor"), supervisor.TreeConfig{})
	tree.AddAPIService(services.NewHTTPServerService(srv, addr, timeout, logger))
	tree.AddPipelineService(services.NewRebuildService(builder, checker, index, cfg, logger))
	err = tree.Serve(ctx)
*/
package supervisor
