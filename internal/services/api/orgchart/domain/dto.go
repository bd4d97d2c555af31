// Package domain holds DTOs for orgchart http and service contracts
package domain

// Minister is one officeholder on a portfolio as of the query date
// IsPresident marks the president acting as the de facto minister or an
// appointed minister whose term overlaps a presidency
type Minister struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	IsNew       bool   `json:"isNew"`
	IsPresident bool   `json:"isPresident"`
	Term        string `json:"term" example:"2022 Jul - Present"`
}

// Portfolio is one ministry with its officeholders as of the query date
type Portfolio struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	IsNew     bool       `json:"isNew"`
	Ministers []Minister `json:"ministers"`
}

// PortfolioList is the active portfolio breakdown for a president.
// Counts cover only portfolios that enriched successfully
type PortfolioList struct {
	ActiveMinistries         int         `json:"activeMinistries"`
	NewMinistries            int         `json:"newMinistries"`
	NewMinisters             int         `json:"newMinisters"`
	MinistriesUnderPresident int         `json:"ministriesUnderPresident"`
	PortfolioList            []Portfolio `json:"portfolioList"`
}

// Department is one department under a portfolio as of the query date
// HasData reports whether the department publishes any catalog category
type Department struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	IsNew   bool   `json:"isNew"`
	HasData bool   `json:"hasData"`
}

// DepartmentList is the department breakdown for one portfolio
type DepartmentList struct {
	TotalDepartments int          `json:"totalDepartments"`
	NewDepartments   int          `json:"newDepartments"`
	DepartmentList   []Department `json:"departmentList"`
}

// PrimeMinister is the head of government as of the query date
type PrimeMinister struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	IsNew bool   `json:"isNew"`
	Term  string `json:"term" example:"2022 Jul - Present"`
}
