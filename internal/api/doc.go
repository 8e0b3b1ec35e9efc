// Marquee - Movie Search and Content-Based Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package api serves the read surface of the catalog and similarity index over
HTTP using the chi router.

Routes:

	GET  /api/v1/health/live         process liveness
	GET  /api/v1/health/ready        catalog size and loaded build
	GET  /api/v1/movies              ?category=popular|top_rated|upcoming&limit=&offset=
	GET  /api/v1/movies/{id}         one movie, catalog then local store
	GET  /api/v1/movies/search       ?q= title search plus recommendations
	POST /api/v1/movies/search       {"query": "..."}
	GET  /api/v1/recommendations     ?title=&k=
	GET  /metrics                    Prometheus exposition

Every JSON response uses the models.APIResponse envelope. Movies are
returned as models.AnnotatedMovie; the is_liked flag comes from the
configured LikesResolver, which defaults to NoLikes.

Middleware stack (outermost first): request id with logging context,
chi RealIP, chi Recoverer, go-chi/cors, Prometheus request metrics. The
movie and recommendation routes are additionally rate limited per client
IP with go-chi/httprate.
*/
package api
