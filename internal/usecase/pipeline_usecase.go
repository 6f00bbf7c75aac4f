package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/user/phytochem-crawler/internal/entity"
	"github.com/user/phytochem-crawler/internal/extractor"
	"github.com/user/phytochem-crawler/internal/repository"
	"github.com/user/phytochem-crawler/pkg/metrics"
	"github.com/user/phytochem-crawler/pkg/utils"
)

// ErrNoMatchingPlants is returned when none of the requested names is in
// the plant list.
var ErrNoMatchingPlants = errors.New("no matching plants in plant list")

const plantPageFile = "plant_details.html"

// Summary counts what a pipeline run did.
type Summary struct {
	Requested int `json:"requested"`
	Processed int `json:"processed"`
	Skipped   int `json:"skipped"`
	Failed    int `json:"failed"`
}

type outcome int

const (
	outcomeProcessed outcome = iota
	outcomeSkipped
	outcomeFailed
)

func (o outcome) String() string {
	switch o {
	case outcomeProcessed:
		return "processed"
	case outcomeSkipped:
		return "skipped"
	default:
		return "failed"
	}
}

// PipelineDeps are the collaborators of a Pipeline. Visited, Failed and
// Metrics are optional.
type PipelineDeps struct {
	Plants  repository.PlantListRepository
	Fetcher repository.PageFetcher
	Pages   repository.PageStore
	Sinks   []repository.RecordSink
	Visited repository.VisitedRepository
	Failed  repository.FailedPageRepository
	Metrics *metrics.Metrics
	Logger  *zap.Logger
}

// Pipeline downloads and extracts plants one at a time.
type Pipeline struct {
	deps        PipelineDeps
	base        *url.URL
	dedupWindow time.Duration
	now         func() time.Time
}

// NewPipeline creates a Pipeline resolving site paths against baseURL.
func NewPipeline(baseURL string, dedupWindow time.Duration, deps PipelineDeps) (*Pipeline, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	return &Pipeline{
		deps:        deps,
		base:        base,
		dedupWindow: dedupWindow,
		now:         time.Now,
	}, nil
}

// Run scrapes every plant of the list whose name is in names. Plants
// scraped within the dedup window are skipped unless force is set. A plant
// whose page cannot be downloaded is counted as failed and the run goes on.
func (p *Pipeline) Run(ctx context.Context, names []string, force bool) (Summary, error) {
	all, err := p.deps.Plants.Load(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("load plant list: %w", err)
	}
	p.deps.Logger.Info("plant list loaded", zap.Int("plants", len(all)))

	plants := entity.FilterPlants(all, names)
	if len(plants) == 0 {
		p.deps.Logger.Warn("no matching plants", zap.Strings("names", names))
		return Summary{}, ErrNoMatchingPlants
	}

	summary := Summary{Requested: len(plants)}
	for i, plant := range plants {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		p.deps.Logger.Info("processing plant",
			zap.String("plant", plant.Name),
			zap.Int("index", i+1),
			zap.Int("total", len(plants)),
		)

		result := p.scrapePlant(ctx, plant, force)
		switch result {
		case outcomeProcessed:
			summary.Processed++
		case outcomeSkipped:
			summary.Skipped++
		case outcomeFailed:
			summary.Failed++
		}
		if p.deps.Metrics != nil {
			p.deps.Metrics.PlantsProcessed.WithLabelValues(result.String()).Inc()
		}
	}

	p.deps.Logger.Info("pipeline complete",
		zap.Int("requested", summary.Requested),
		zap.Int("processed", summary.Processed),
		zap.Int("skipped", summary.Skipped),
		zap.Int("failed", summary.Failed),
	)
	return summary, nil
}

func (p *Pipeline) scrapePlant(ctx context.Context, plant entity.PlantOption, force bool) outcome {
	log := p.deps.Logger.With(zap.String("plant", plant.Name))

	if !force && p.deps.Visited != nil {
		visited, err := p.deps.Visited.IsVisited(ctx, plant.Name)
		if err != nil {
			log.Warn("dedup check failed, scraping anyway", zap.Error(err))
		} else if visited {
			log.Info("skipping recently scraped plant")
			return outcomeSkipped
		}
	}

	html, err := p.download(ctx, plant.Name, entity.PagePlant, plant.Value, plantPageFile)
	if err != nil {
		log.Error("skipping plant, plant page unavailable", zap.Error(err))
		return outcomeFailed
	}

	record, report, err := extractor.ExtractPlant(html)
	if err != nil {
		log.Error("plant page could not be parsed", zap.Error(err))
		return outcomeFailed
	}
	p.observe(log, report)
	if plant.Name != "" {
		record.PlantName = plant.Name
	}
	log.Info("plant data extracted",
		zap.Int("phytochemicals", len(record.Phytochemicals)),
		zap.String("common_name", record.CommonName),
		zap.String("system_of_medicine", record.SystemOfMedicine),
	)

	ids := record.PhytochemicalIDs()
	log.Info("processing phytochemicals", zap.Int("unique", len(ids)))

	details := make(map[string]*entity.PhytochemicalDetail, len(ids))
	for i, id := range ids {
		if err := ctx.Err(); err != nil {
			log.Warn("run canceled", zap.Error(err))
			return outcomeFailed
		}
		log.Debug("phytochemical", zap.String("id", id), zap.Int("index", i+1), zap.Int("total", len(ids)))
		details[id] = p.scrapeDetail(ctx, log, plant.Name, id)
	}
	record.AttachDetails(details)
	record.ScrapedAt = p.now().UTC()

	for _, sink := range p.deps.Sinks {
		if err := sink.Save(ctx, record); err != nil {
			log.Error("saving plant record failed", zap.Error(err))
			return outcomeFailed
		}
	}

	if p.deps.Visited != nil {
		if err := p.deps.Visited.MarkVisited(ctx, plant.Name, p.dedupWindow); err != nil {
			log.Warn("failed to mark plant as scraped", zap.Error(err))
		}
	}
	log.Info("plant done")
	return outcomeProcessed
}

// scrapeDetail downloads and extracts the detail pages of one
// phytochemical. Pages that fail are left out of the detail.
func (p *Pipeline) scrapeDetail(ctx context.Context, log *zap.Logger, plantName, id string) *entity.PhytochemicalDetail {
	detail := &entity.PhytochemicalDetail{}
	detail.Identifier = id

	for _, pt := range entity.DetailPages {
		html, err := p.download(ctx, plantName, pt, pt.DetailPath(id), pt.FileName(id))
		if err != nil {
			log.Warn("detail page unavailable", zap.String("id", id), zap.String("page_type", string(pt)), zap.Error(err))
			continue
		}

		switch pt {
		case entity.PageSummary:
			summary, report, err := extractor.ExtractSummary(html)
			if err != nil {
				log.Warn("summary page could not be parsed", zap.String("id", id), zap.Error(err))
				continue
			}
			p.observe(log, report)
			if summary.Identifier == "" {
				summary.Identifier = id
			}
			detail.PhytochemicalSummary = summary
		case entity.PagePhysicochemical:
			detail.PhysicochemicalProperties = p.properties(log, id, pt, html, extractor.HeadingPhysicochemical)
		case entity.PageDrugLikeness:
			detail.DrugLikenessProperties = p.properties(log, id, pt, html, extractor.HeadingDrugLikeness)
		case entity.PageADMET:
			detail.ADMETProperties = p.properties(log, id, pt, html, extractor.HeadingADMET)
		case entity.PageDescriptors:
			descriptors, err := extractor.ExtractDescriptors(html)
			if err != nil {
				log.Warn("descriptor page could not be parsed", zap.String("id", id), zap.Error(err))
				continue
			}
			log.Debug("descriptors extracted", zap.String("id", id), zap.Int("count", len(descriptors)))
			detail.ChemicalDescriptors = descriptors
		}
	}
	return detail
}

func (p *Pipeline) properties(log *zap.Logger, id string, pt entity.PageType, html, heading string) []entity.Property {
	props, err := extractor.ExtractProperties(html, heading)
	if err != nil {
		log.Warn("property page could not be parsed", zap.String("id", id), zap.String("page_type", string(pt)), zap.Error(err))
		return nil
	}
	log.Debug("properties extracted", zap.String("id", id), zap.String("page_type", string(pt)), zap.Int("count", len(props)))
	return props
}

// download fetches a site path and keeps a copy of the page. Failures are
// recorded in the failed-page repository when there is one.
func (p *Pipeline) download(ctx context.Context, plantName string, pt entity.PageType, path, fileName string) (string, error) {
	target, err := utils.ToAbsoluteURL(p.base, path)
	if err != nil {
		return "", fmt.Errorf("resolve %q: %w", path, err)
	}

	start := p.now()
	html, err := p.deps.Fetcher.Fetch(ctx, target)
	if p.deps.Metrics != nil {
		status := "success"
		if err != nil {
			status = "failure"
		}
		p.deps.Metrics.PagesFetched.WithLabelValues(string(pt), status).Inc()
		p.deps.Metrics.FetchDuration.WithLabelValues(string(pt)).Observe(p.now().Sub(start).Seconds())
	}
	if err != nil {
		p.recordFailure(ctx, plantName, pt, target, err)
		return "", err
	}

	if p.deps.Failed != nil {
		if err := p.deps.Failed.Delete(ctx, target); err != nil {
			p.deps.Logger.Debug("failed to clear failed page", zap.String("url", target), zap.Error(err))
		}
	}

	if p.deps.Pages != nil {
		saved, err := p.deps.Pages.Save(ctx, plantName, fileName, html)
		if err != nil {
			p.deps.Logger.Warn("failed to keep page copy", zap.String("url", target), zap.Error(err))
		} else {
			p.deps.Logger.Debug("page saved", zap.String("path", saved))
		}
	}
	return html, nil
}

func (p *Pipeline) recordFailure(ctx context.Context, plantName string, pt entity.PageType, target string, cause error) {
	if p.deps.Failed == nil {
		return
	}
	err := p.deps.Failed.SaveOrUpdate(ctx, &entity.FailedPage{
		URL:           target,
		PageType:      pt,
		PlantName:     plantName,
		FailureReason: cause.Error(),
		LastAttempt:   p.now().UTC(),
	})
	if err != nil {
		p.deps.Logger.Error("failed to record failed page", zap.String("url", target), zap.Error(err))
	}
}

func (p *Pipeline) observe(log *zap.Logger, report *extractor.Report) {
	if report == nil {
		return
	}
	if len(report.Empty) > 0 {
		log.Debug("empty fields", zap.String("schema", report.Schema), zap.Strings("fields", report.Empty))
	}
	for _, issue := range report.Issues {
		log.Warn("suspicious extraction", zap.String("schema", report.Schema), zap.Stringer("issue", issue))
	}
	if p.deps.Metrics == nil {
		return
	}
	for _, field := range report.Empty {
		p.deps.Metrics.EmptyFields.WithLabelValues(report.Schema, field).Inc()
	}
	for _, issue := range report.Issues {
		p.deps.Metrics.ValidationIssues.WithLabelValues(report.Schema, string(issue.Problem)).Inc()
	}
}

// FetchPlantPages downloads the plant pages of the first limit plants of
// the list, or of all plants when limit is not positive, and saves each as
// plant_NNNN_<name>.html. It returns the number of pages saved.
func (p *Pipeline) FetchPlantPages(ctx context.Context, limit int) (int, error) {
	all, err := p.deps.Plants.Load(ctx)
	if err != nil {
		return 0, fmt.Errorf("load plant list: %w", err)
	}
	if limit <= 0 || limit > len(all) {
		limit = len(all)
	}
	p.deps.Logger.Info("fetching plant pages", zap.Int("plants", len(all)), zap.Int("limit", limit))

	saved := 0
	for i, plant := range all[:limit] {
		if err := ctx.Err(); err != nil {
			return saved, err
		}
		fileName := fmt.Sprintf("plant_%04d_%s.html", i+1, entity.SafeDirName(plant.Name))
		if _, err := p.download(ctx, "", entity.PagePlant, plant.Value, fileName); err != nil {
			p.deps.Logger.Error("plant page unavailable", zap.String("plant", plant.Name), zap.Error(err))
			continue
		}
		saved++
	}
	return saved, nil
}
