package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Profile is the YAML clipping profile:
//
//	roster: [IGAM, FEAM, ...]
//	blocklist: [concurso, ...]
//	query_sets:
//	  - name: orgaos
//	    terms: [IGAM]
type Profile struct {
	Title     string     `yaml:"title"`
	Roster    []string   `yaml:"roster"`
	Blocklist []string   `yaml:"blocklist"`
	Aliases   []Alias    `yaml:"aliases"`
	Locale    Locale     `yaml:"locale"`
	Window    Window     `yaml:"window"`
	QuerySets []QuerySet `yaml:"query_sets"`
	Portals   []Source   `yaml:"portals"`
	Sections  Sections   `yaml:"sections"`
}

// Alias maps any cleaned outlet label containing Match to Name.
type Alias struct {
	Match string `yaml:"match"`
	Name  string `yaml:"name"`
}

// Locale holds the Google News language/region qualifiers.
type Locale struct {
	HL   string `yaml:"hl"`
	GL   string `yaml:"gl"`
	CEID string `yaml:"ceid"`
}

type Window struct {
	Enabled *bool  `yaml:"enabled"`
	Clock   string `yaml:"clock"`
}

// On reports whether window filtering is active; it defaults to true.
func (w Window) On() bool {
	return w.Enabled == nil || *w.Enabled
}

// QuerySet is a group of search terms and static feeds sharing one topical
// policy. Topical defaults to true; when false every non-organization entry
// of the set goes to the general bucket.
type QuerySet struct {
	Name      string   `yaml:"name"`
	Terms     []string `yaml:"terms"`
	Feeds     []Source `yaml:"feeds"`
	Allowlist []string `yaml:"allowlist"`
	Topical   *bool    `yaml:"topical"`
}

func (q QuerySet) TopicalFilter() bool {
	return q.Topical == nil || *q.Topical
}

// Source is a named URL: a static feed or a portal search page.
type Source struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

// Sections holds the headings printed by the formatters and the line each
// bucket shows when it has no articles.
type Sections struct {
	Organization      string `yaml:"organization"`
	General           string `yaml:"general"`
	OrganizationEmpty string `yaml:"organization_empty"`
	GeneralEmpty      string `yaml:"general_empty"`
}

// LoadProfile reads a clipping profile from a YAML file. Missing headings
// and locale fields are filled from DefaultProfile.
func LoadProfile(path string) (Profile, error) {
	f, err := os.Open(path)
	if err != nil {
		return Profile{}, err
	}
	defer f.Close()

	var p Profile
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil {
		return Profile{}, fmt.Errorf("decode profile: %w", err)
	}
	p.fillDefaults()
	return p, nil
}

func (p *Profile) fillDefaults() {
	def := DefaultProfile()
	if p.Title == "" {
		p.Title = def.Title
	}
	if p.Locale.HL == "" {
		p.Locale = def.Locale
	}
	if p.Sections.Organization == "" {
		p.Sections.Organization = def.Sections.Organization
	}
	if p.Sections.General == "" {
		p.Sections.General = def.Sections.General
	}
	if p.Sections.OrganizationEmpty == "" {
		p.Sections.OrganizationEmpty = def.Sections.OrganizationEmpty
	}
	if p.Sections.GeneralEmpty == "" {
		p.Sections.GeneralEmpty = def.Sections.GeneralEmpty
	}
}

func (p Profile) Validate() error {
	if len(p.Roster) == 0 {
		return fmt.Errorf("profile: roster must not be empty")
	}
	if len(p.QuerySets) == 0 && len(p.Portals) == 0 {
		return fmt.Errorf("profile: at least one query set or portal is required")
	}
	names := make(map[string]bool, len(p.QuerySets))
	for i, qs := range p.QuerySets {
		if strings.TrimSpace(qs.Name) == "" {
			return fmt.Errorf("profile: query set #%d has no name", i+1)
		}
		if names[qs.Name] {
			return fmt.Errorf("profile: query set %q is defined twice", qs.Name)
		}
		names[qs.Name] = true
		if len(qs.Terms) == 0 && len(qs.Feeds) == 0 {
			return fmt.Errorf("profile: query set %q has neither terms nor feeds", qs.Name)
		}
		for _, f := range qs.Feeds {
			if f.URL == "" {
				return fmt.Errorf("profile: query set %q has a feed without url", qs.Name)
			}
		}
	}
	for _, a := range p.Aliases {
		if a.Match == "" || a.Name == "" {
			return fmt.Errorf("profile: alias entries need both match and name")
		}
	}
	return nil
}

func boolPtr(b bool) *bool { return &b }

// DefaultProfile is the Minas Gerais environmental clipping.
func DefaultProfile() Profile {
	return Profile{
		Title: "Clipping Ambiental – Minas Gerais",
		Roster: []string{
			"SISEMA",
			"Sistema Estadual de Meio Ambiente e Recursos Hídricos",
			"SEMAD MG",
			"Secretaria de Estado de Meio Ambiente e Desenvolvimento Sustentável de Minas Gerais",
			"FEAM",
			"Fundação Estadual do Meio Ambiente",
			"IEF",
			"Instituto Estadual de Florestas",
			"IGAM",
			"Instituto Mineiro de Gestão das Águas",
			"Secretaria de Meio Ambiente de Minas Gerais",
		},
		Blocklist: []string{
			"concurso",
			"previsão do tempo",
			"temperatura",
			"clima hoje",
			"meteorologia",
		},
		Aliases: []Alias{
			{Match: "otempo", Name: "Jornal O Tempo"},
			{Match: "estadodeminas", Name: "Jornal Estado de Minas"},
			{Match: "hojeemdia", Name: "Jornal Hoje em Dia"},
			{Match: "g1", Name: "G1"},
			{Match: "agenciabrasil", Name: "Agência Brasil"},
			{Match: "oeco", Name: "O Eco"},
			{Match: "bhaz", Name: "BHAZ"},
			{Match: "itatiaia", Name: "Rádio Itatiaia"},
		},
		Locale: Locale{HL: "pt-BR", GL: "BR", CEID: "BR:pt-419"},
		Window: Window{Enabled: boolPtr(true), Clock: "08:30"},
		QuerySets: []QuerySet{
			{
				Name:    "orgaos",
				Terms:   []string{"SEMAD", "FEAM", "IEF Minas Gerais", "IGAM", "SISEMA"},
				Topical: boolPtr(false),
			},
			{
				Name:      "meio-ambiente",
				Terms:     []string{"meio ambiente Minas Gerais", "licenciamento ambiental Minas", "barragem Minas Gerais"},
				Allowlist: []string{"meio ambiente", "ambiental"},
			},
			{
				Name: "feeds",
				Feeds: []Source{
					{Name: "Portal O Tempo", URL: "https://www.otempo.com.br/rss"},
					{Name: "Estado de Minas", URL: "https://www.em.com.br/rss"},
					{Name: "G1 Minas", URL: "https://g1.globo.com/rss/g1/mg/"},
				},
				Allowlist: []string{"meio ambiente", "ambiental"},
			},
		},
		Portals: []Source{
			{Name: "Portal O Tempo", URL: "https://www.otempo.com.br/busca?q=meio%20ambiente"},
			{Name: "Portal G1", URL: "https://g1.globo.com/meio-ambiente/"},
			{Name: "Portal Estado de Minas", URL: "https://www.em.com.br/busca/meio%20ambiente/"},
			{Name: "Portal Agência Brasil", URL: "https://agenciabrasil.ebc.com.br/meio-ambiente"},
		},
		Sections: Sections{
			Organization:      "Matérias com citação a órgãos ambientais de MG",
			General:           "Outras matérias ambientais relevantes",
			OrganizationEmpty: "Nenhuma matéria com citação direta a órgãos ambientais de MG.",
			GeneralEmpty:      "Nenhuma outra matéria ambiental relevante encontrada.",
		},
	}
}
