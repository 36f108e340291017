package router

import (
	"net/http"

	"github.com/boazcstrike/silayan-laundry/app/controller"
)

type Controllers struct {
	Count      *controller.CountController
	Action     *controller.ActionController
	Submission *controller.SubmissionController
	Report     *controller.ReportController
}

// pingHandler handles GET /ping
func pingHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

func SetupRoutes(controllers *Controllers) {
	// Ping endpoint
	http.HandleFunc("/ping", pingHandler)

	// Catalog and counts routes
	http.HandleFunc("/api/catalog", controllers.Count.GetCatalog)
	http.HandleFunc("/api/counts", controllers.Count.GetCounts)
	http.HandleFunc("/api/counts/update", controllers.Count.UpdateCount)
	http.HandleFunc("/api/counts/set", controllers.Count.SetCount)

	// Custom items - handles both POST (add) and DELETE (remove)
	http.HandleFunc("/api/counts/custom", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			controllers.Count.AddCustomItem(w, r)
		} else if r.Method == http.MethodDelete {
			controllers.Count.RemoveCustomItem(w, r)
		} else {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})

	// Reset is the only confirmation-gated destructive operation
	http.HandleFunc("/api/counts/reset", controllers.Action.Reset)

	// Action routes
	http.HandleFunc("/api/actions/download", controllers.Action.Download)
	http.HandleFunc("/api/actions/send", controllers.Action.Send)

	// Submission log routes
	http.HandleFunc("/api/submissions", controllers.Submission.List)
	http.HandleFunc("/api/submissions/stats", controllers.Submission.Stats)
	http.HandleFunc("/api/submissions/channels", controllers.Submission.Channels)
	http.HandleFunc("/api/submissions/range", controllers.Submission.Range)
	http.HandleFunc("/api/submissions/export", controllers.Submission.Export)

	// Submission by ID (specific routes above win on longest-match)
	http.HandleFunc("/api/submissions/", controllers.Submission.GetByID)

	// Report routes
	http.HandleFunc("/admin/report/render", controllers.Report.Render)
	http.HandleFunc("/admin/report/pdf", controllers.Report.PDF)
}
