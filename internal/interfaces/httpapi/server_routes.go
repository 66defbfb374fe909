package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerAdminRoutes(mux *http.ServeMux, handler *Handler, adminToken string) {
	mux.Handle("POST /v1/admin/card-imports", RequireAdminToken(adminToken, http.HandlerFunc(handler.RunCardImport)))
	mux.Handle("GET /v1/admin/card-imports/runs", RequireAdminToken(adminToken, http.HandlerFunc(handler.ListImportRuns)))
	mux.Handle("GET /v1/admin/card-imports/runs/{runID}", RequireAdminToken(adminToken, http.HandlerFunc(handler.GetImportRun)))
}
