package rest

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/entity"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/tictactoe"
)

type square struct {
	Index int
	Mark  entity.Mark
}

type pageData struct {
	View tictactoe.View
	Rows [][]square
}

func newPageData(view tictactoe.View) pageData {
	rows := make([][]square, 0, 3)
	for r := 0; r < 3; r++ {
		row := make([]square, 0, 3)
		for c := 0; c < 3; c++ {
			idx := r*3 + c
			row = append(row, square{Index: idx, Mark: view.Squares[idx]})
		}
		rows = append(rows, row)
	}

	return pageData{View: view, Rows: rows}
}

func loadPageTemplate() *template.Template {
	return template.Must(template.New("page").Parse(pageTemplate))
}

func renderTemplate(t *template.Template, data any) ([]byte, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render template: %w", err)
	}

	return buf.Bytes(), nil
}

const pageTemplate = `<!doctype html>
<html>
<head>
<meta charset="utf-8"/>
<title>Tic-Tac-Toe</title>
<style>
.game { display: flex; flex-direction: row; }
.game-info { margin-left: 20px; }
.board-row { display: flex; }
.square { width: 48px; height: 48px; font-size: 24px; font-weight: bold; margin: -1px -1px 0 0; }
.status { margin-bottom: 10px; }
</style>
</head>
<body>
<div class="game">
  <div class="game-board">
    <div class="status" id="status">{{.View.StatusText}}</div>
    <form method="post" action="/play" id="board">
      {{range .Rows}}
      <div class="board-row">
        {{range .}}<button class="square" type="submit" name="cell" value="{{.Index}}">{{.Mark}}</button>{{end}}
      </div>
      {{end}}
    </form>
  </div>
  <div class="game-info">
    <form method="post" action="/jump" id="history">
      <ol start="0">
        {{range .View.History}}
        <li>{{if .Current}}<b>{{.Description}}</b>{{else}}<button type="submit" name="move" value="{{.Move}}">{{.Description}}</button>{{end}}</li>
        {{end}}
      </ol>
    </form>
    <form method="post" action="/new"><button type="submit">New game</button></form>
  </div>
</div>
</body>
</html>
`
