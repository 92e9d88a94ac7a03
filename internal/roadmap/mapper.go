package roadmap

import (
	"cmp"
	"slices"

	"github.com/lprnmns/alperenmanas-portfolio-sub000/internal/db"
)

// Item is a roadmap record enriched with its logs, artifacts and progress.
type Item struct {
	db.RoadmapItem
	DailyLogs       []db.DailyLog `json:"daily_logs"`
	Artifacts       []db.Artifact `json:"artifacts"`
	ProgressPercent int           `json:"progress_percent"`
}

// MapRoadmapItems nests daily logs and artifacts under their roadmap items.
// Rows whose parent is missing or unknown are dropped.
func MapRoadmapItems(rows []db.RoadmapItem, logs []db.DailyLog, artifacts []db.Artifact) []Item {
	logsByItem := make(map[string][]db.DailyLog, len(rows))
	for _, log := range logs {
		if log.RoadmapItemID == "" {
			continue
		}
		logsByItem[log.RoadmapItemID] = append(logsByItem[log.RoadmapItemID], log)
	}

	artifactsByItem := make(map[string][]db.Artifact, len(rows))
	for _, artifact := range artifacts {
		if artifact.RoadmapItemID == nil || *artifact.RoadmapItemID == "" {
			continue
		}
		id := *artifact.RoadmapItemID
		artifactsByItem[id] = append(artifactsByItem[id], artifact)
	}

	items := make([]Item, 0, len(rows))
	for _, row := range rows {
		itemLogs := slices.Clone(logsByItem[row.ID])
		if itemLogs == nil {
			itemLogs = []db.DailyLog{}
		}
		slices.SortFunc(itemLogs, compareLogs)

		itemArtifacts := slices.Clone(artifactsByItem[row.ID])
		if itemArtifacts == nil {
			itemArtifacts = []db.Artifact{}
		}
		slices.SortFunc(itemArtifacts, compareArtifacts)

		items = append(items, Item{
			RoadmapItem:     row,
			DailyLogs:       itemLogs,
			Artifacts:       itemArtifacts,
			ProgressPercent: CalculateProgressPercent(row.Status, row.PlannedHours, row.ActualHours),
		})
	}

	slices.SortFunc(items, func(a, b Item) int {
		return compareRecords(a.RoadmapItem, b.RoadmapItem)
	})

	return items
}

// compareRecords orders by sort order, then start date; id keeps it total.
func compareRecords(a, b db.RoadmapItem) int {
	if diff := cmp.Compare(a.SortOrder, b.SortOrder); diff != 0 {
		return diff
	}
	if diff := cmp.Compare(a.StartDate, b.StartDate); diff != 0 {
		return diff
	}
	return cmp.Compare(a.ID, b.ID)
}

// compareLogs puts the most recent log first.
func compareLogs(a, b db.DailyLog) int {
	if diff := cmp.Compare(b.LogDate, a.LogDate); diff != 0 {
		return diff
	}
	if diff := b.CreatedAt.Compare(a.CreatedAt); diff != 0 {
		return diff
	}
	return cmp.Compare(a.ID, b.ID)
}

func compareArtifacts(a, b db.Artifact) int {
	if diff := cmp.Compare(a.SortOrder, b.SortOrder); diff != 0 {
		return diff
	}
	if diff := b.CreatedAt.Compare(a.CreatedAt); diff != 0 {
		return diff
	}
	return cmp.Compare(a.ID, b.ID)
}
