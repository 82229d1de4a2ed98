package client

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/muneeb-arif/my-portfolio-sub000/models"
)

// Entity endpoint roots
const (
	pathCategories    = "/categories"
	pathTechnologies  = "/technologies"
	pathSkills        = "/skills"
	pathNiches        = "/niches"
	pathProjects      = "/projects"
	pathProjectImages = "/project-images"
	pathSettings      = "/settings"
)

// Reads route through RequestWithFallback with the static dataset as the
// substitute, so consumers never branch on the data source. Writes route
// through Request and surface failure.

func (c *Client) ListCategories(ctx context.Context) ([]models.Category, error) {
	resp, err := c.RequestWithFallback(ctx, http.MethodGet, pathCategories, nil, c.seed.Categories())
	if err != nil {
		return nil, err
	}
	var categories []models.Category
	if err := resp.DecodeData(&categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (c *Client) CreateCategory(ctx context.Context, category models.Category) (*models.Category, error) {
	return decodeOne[models.Category](c.Request(ctx, http.MethodPost, pathCategories, category))
}

func (c *Client) UpdateCategory(ctx context.Context, category models.Category) (*models.Category, error) {
	return decodeOne[models.Category](c.Request(ctx, http.MethodPut, pathCategories+"/"+category.ID.String(), category))
}

// DeleteCategory removes a category by id. The backend blocks the delete
// while any project references the category by name.
func (c *Client) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	_, err := c.Request(ctx, http.MethodDelete, pathCategories+"/"+id.String(), nil)
	return err
}

func (c *Client) ListTechnologies(ctx context.Context) ([]models.Technology, error) {
	resp, err := c.RequestWithFallback(ctx, http.MethodGet, pathTechnologies, nil, c.seed.Technologies())
	if err != nil {
		return nil, err
	}
	var technologies []models.Technology
	if err := resp.DecodeData(&technologies); err != nil {
		return nil, err
	}
	return technologies, nil
}

func (c *Client) CreateTechnology(ctx context.Context, technology models.Technology) (*models.Technology, error) {
	return decodeOne[models.Technology](c.Request(ctx, http.MethodPost, pathTechnologies, technology))
}

func (c *Client) UpdateTechnology(ctx context.Context, technology models.Technology) (*models.Technology, error) {
	return decodeOne[models.Technology](c.Request(ctx, http.MethodPut, pathTechnologies+"/"+technology.ID.String(), technology))
}

// DeleteTechnology removes a technology; the backend cascades the delete to
// its skills.
func (c *Client) DeleteTechnology(ctx context.Context, id uuid.UUID) error {
	_, err := c.Request(ctx, http.MethodDelete, pathTechnologies+"/"+id.String(), nil)
	return err
}

func (c *Client) ListSkills(ctx context.Context) ([]models.Skill, error) {
	resp, err := c.RequestWithFallback(ctx, http.MethodGet, pathSkills, nil, c.seedSkills())
	if err != nil {
		return nil, err
	}
	var skills []models.Skill
	if err := resp.DecodeData(&skills); err != nil {
		return nil, err
	}
	return skills, nil
}

func (c *Client) CreateSkill(ctx context.Context, skill models.Skill) (*models.Skill, error) {
	return decodeOne[models.Skill](c.Request(ctx, http.MethodPost, pathSkills, skill))
}

func (c *Client) UpdateSkill(ctx context.Context, skill models.Skill) (*models.Skill, error) {
	return decodeOne[models.Skill](c.Request(ctx, http.MethodPut, pathSkills+"/"+skill.ID.String(), skill))
}

func (c *Client) DeleteSkill(ctx context.Context, id uuid.UUID) error {
	_, err := c.Request(ctx, http.MethodDelete, pathSkills+"/"+id.String(), nil)
	return err
}

func (c *Client) ListNiches(ctx context.Context) ([]models.Niche, error) {
	resp, err := c.RequestWithFallback(ctx, http.MethodGet, pathNiches, nil, c.seed.Niches())
	if err != nil {
		return nil, err
	}
	var niches []models.Niche
	if err := resp.DecodeData(&niches); err != nil {
		return nil, err
	}
	return niches, nil
}

func (c *Client) CreateNiche(ctx context.Context, niche models.Niche) (*models.Niche, error) {
	return decodeOne[models.Niche](c.Request(ctx, http.MethodPost, pathNiches, niche))
}

func (c *Client) UpdateNiche(ctx context.Context, niche models.Niche) (*models.Niche, error) {
	return decodeOne[models.Niche](c.Request(ctx, http.MethodPut, pathNiches+"/"+niche.ID.String(), niche))
}

func (c *Client) DeleteNiche(ctx context.Context, id uuid.UUID) error {
	_, err := c.Request(ctx, http.MethodDelete, pathNiches+"/"+id.String(), nil)
	return err
}

func (c *Client) ListProjects(ctx context.Context) ([]models.Project, error) {
	resp, err := c.RequestWithFallback(ctx, http.MethodGet, pathProjects, nil, c.seed.Projects())
	if err != nil {
		return nil, err
	}
	var projects []models.Project
	if err := resp.DecodeData(&projects); err != nil {
		return nil, err
	}
	return projects, nil
}

func (c *Client) CreateProject(ctx context.Context, project models.Project) (*models.Project, error) {
	return decodeOne[models.Project](c.Request(ctx, http.MethodPost, pathProjects, project))
}

func (c *Client) UpdateProject(ctx context.Context, project models.Project) (*models.Project, error) {
	return decodeOne[models.Project](c.Request(ctx, http.MethodPut, pathProjects+"/"+project.ID.String(), project))
}

func (c *Client) DeleteProject(ctx context.Context, id uuid.UUID) error {
	_, err := c.Request(ctx, http.MethodDelete, pathProjects+"/"+id.String(), nil)
	return err
}

func (c *Client) ListProjectImages(ctx context.Context) ([]models.ProjectImage, error) {
	resp, err := c.RequestWithFallback(ctx, http.MethodGet, pathProjectImages, nil, c.seedProjectImages())
	if err != nil {
		return nil, err
	}
	var images []models.ProjectImage
	if err := resp.DecodeData(&images); err != nil {
		return nil, err
	}
	return images, nil
}

func (c *Client) CreateProjectImage(ctx context.Context, image models.ProjectImage) (*models.ProjectImage, error) {
	return decodeOne[models.ProjectImage](c.Request(ctx, http.MethodPost, pathProjectImages, image))
}

func (c *Client) DeleteProjectImage(ctx context.Context, id uuid.UUID) error {
	_, err := c.Request(ctx, http.MethodDelete, pathProjectImages+"/"+id.String(), nil)
	return err
}

func (c *Client) ListSettings(ctx context.Context) ([]models.Setting, error) {
	resp, err := c.RequestWithFallback(ctx, http.MethodGet, pathSettings, nil, c.seed.Settings())
	if err != nil {
		return nil, err
	}
	var settings []models.Setting
	if err := resp.DecodeData(&settings); err != nil {
		return nil, err
	}
	return settings, nil
}

// GetSetting reads a single setting by key, falling back to the seed value
// for that key (or an empty setting when the seed has none).
func (c *Client) GetSetting(ctx context.Context, key string) (*models.Setting, error) {
	fallbackValue := models.Setting{Key: key}
	for _, s := range c.seed.Settings() {
		if s.Key == key {
			fallbackValue = s
			break
		}
	}

	resp, err := c.RequestWithFallback(ctx, http.MethodGet, pathSettings+"/"+key, nil, fallbackValue)
	if err != nil {
		return nil, err
	}
	var setting models.Setting
	if err := resp.DecodeData(&setting); err != nil {
		return nil, err
	}
	return &setting, nil
}

// UpsertSetting writes a setting by key. Settings are keyed, not id'd, so
// the backend treats PUT as create-or-replace.
func (c *Client) UpsertSetting(ctx context.Context, setting models.Setting) (*models.Setting, error) {
	return decodeOne[models.Setting](c.Request(ctx, http.MethodPut, pathSettings+"/"+setting.Key, setting))
}

func (c *Client) DeleteSetting(ctx context.Context, key string) error {
	_, err := c.Request(ctx, http.MethodDelete, pathSettings+"/"+key, nil)
	return err
}

// seedSkills flattens the seed technologies into their skill records
func (c *Client) seedSkills() []models.Skill {
	var skills []models.Skill
	for _, tech := range c.seed.Technologies() {
		skills = append(skills, tech.Skills...)
	}
	return skills
}

// seedProjectImages flattens the seed projects into their image records
func (c *Client) seedProjectImages() []models.ProjectImage {
	var images []models.ProjectImage
	for _, project := range c.seed.Projects() {
		images = append(images, project.Images...)
	}
	return images
}

// decodeOne unwraps a single-record envelope into its typed value
func decodeOne[T any](resp *Response, err error) (*T, error) {
	if err != nil {
		return nil, err
	}
	var value T
	if err := resp.DecodeData(&value); err != nil {
		return nil, err
	}
	return &value, nil
}
