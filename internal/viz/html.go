package viz

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
)

// compiledTemplate is parsed at init time to fail fast on template errors.
var compiledTemplate *template.Template

func init() {
	compiledTemplate = template.Must(template.New("dashboard").Parse(htmlTemplate))
}

// HTMLOptions configures HTML generation.
type HTMLOptions struct {
	Title      string
	Layout     string // "force", "circle", "grid" or "tree"
	Live       bool   // Re-render through RenderPath when an option is toggled
	RenderPath string
}

// DefaultOptions returns default HTML generation options.
func DefaultOptions() HTMLOptions {
	return HTMLOptions{
		Title:      "Human Dynamics Takes Over IC2S2",
		Layout:     "force",
		RenderPath: "/api/render",
	}
}

// ValidLayouts lists the supported layout algorithm names.
var ValidLayouts = []string{"force", "circle", "grid", "tree"}

// GenerateHTML renders the dashboard page around a render model encoded as
// JSON. The page draws the people, paper and bipartite networks, the paper
// list and the two centrality bar charts from that model.
func GenerateHTML(modelJSON []byte, opts HTMLOptions) (string, error) {
	if len(modelJSON) == 0 {
		return "", fmt.Errorf("render model cannot be empty")
	}
	if !json.Valid(modelJSON) {
		return "", fmt.Errorf("render model is not valid JSON")
	}
	if err := ValidateLayout(opts.Layout); err != nil {
		return "", err
	}

	title := opts.Title
	if title == "" {
		title = DefaultOptions().Title
	}
	renderPath := opts.RenderPath
	if renderPath == "" {
		renderPath = DefaultOptions().RenderPath
	}

	data := templateData{
		Title:      title,
		ModelJSON:  template.JS(modelJSON),
		Layout:     layoutToCytoscape(opts.Layout),
		Live:       opts.Live,
		RenderPath: renderPath,
	}

	var buf bytes.Buffer
	if err := compiledTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("executing dashboard template: %w", err)
	}
	return buf.String(), nil
}

// ValidateLayout checks if the layout option is valid.
func ValidateLayout(layout string) error {
	switch layout {
	case "", "force", "circle", "grid", "tree":
		return nil
	default:
		return fmt.Errorf("invalid layout %q: must be force, circle, grid, or tree", layout)
	}
}

// templateData holds data for the HTML template.
type templateData struct {
	Title      string
	ModelJSON  template.JS
	Layout     string
	Live       bool
	RenderPath string
}

// layoutToCytoscape converts user-friendly layout names to Cytoscape.js layout algorithm names.
func layoutToCytoscape(layout string) string {
	switch layout {
	case "circle":
		return "circle"
	case "grid":
		return "grid"
	case "tree":
		return "breadthfirst"
	default:
		return "cose"
	}
}

const htmlTemplate = `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <title>{{.Title}}</title>
  <script src="https://unpkg.com/cytoscape@3/dist/cytoscape.min.js"></script>
  <script src="https://cdn.plot.ly/plotly-2.35.2.min.js"></script>
  <style>
    * {
      box-sizing: border-box;
    }
    body {
      font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, Helvetica, Arial, sans-serif;
      margin: 0;
      padding: 0 2em;
      background: #f5f5f5;
      color: #333;
    }
    .row {
      display: flex;
      gap: 2em;
    }
    .networks {
      flex: 7;
    }
    .sidebar {
      flex: 5;
    }
    .graph {
      width: 100%;
      height: 400px;
      background: white;
      border: 1px solid #ddd;
    }
    .chart {
      width: 100%;
      height: 320px;
    }
    .empty {
      color: #888;
      font-style: italic;
    }
    #paper-list li {
      margin: 2px 0;
    }
    #tooltip {
      position: absolute;
      display: none;
      background: white;
      border: 1px solid #ccc;
      border-radius: 4px;
      padding: 8px 12px;
      box-shadow: 0 2px 8px rgba(0,0,0,0.15);
      max-width: 300px;
      font-size: 13px;
      z-index: 1000;
      pointer-events: none;
    }
  </style>
</head>
<body>
  <div class="row"><h1>{{.Title}}</h1></div>
  <div class="row">
    <div class="networks">
      <h2>Networks</h2>
      <h3>People</h3>
      <div id="people-graph" class="graph"></div>
      <h3>Papers</h3>
      <div id="paper-graph" class="graph"></div>
      <h3>Bipartite</h3>
      <div id="bipartite-graph" class="graph"></div>
    </div>
    <div class="sidebar">
      <h3>Options</h3>
      <div id="options">
        <label><input type="checkbox" value="Remove Sandy" id="opt-named"> Remove Sandy</label><br>
        <label><input type="checkbox" value="Remove Posters" id="opt-posters"> Remove Posters</label>
      </div>
      <p id="stats"></p>
      <h3>Papers</h3>
      <ul id="paper-list"></ul>
      <h3>Centralities</h3>
      <div id="betweenness" class="chart"></div>
      <div id="closeness" class="chart"></div>
    </div>
  </div>
  <div id="tooltip"></div>
  <script>
    (function() {
      const live = {{.Live}};
      const renderPath = {{.RenderPath}};
      const layout = {{.Layout}};
      const tooltip = document.getElementById('tooltip');
      const checkboxes = document.querySelectorAll('#options input[type=checkbox]');

      const graphStyle = [
        {
          selector: 'node[type="person"]',
          style: {
            'background-color': '#4A90D9',
            'label': 'data(label)',
            'font-size': '10px',
            'text-valign': 'bottom',
            'text-margin-y': '5px',
            'width': 'mapData(degree, 0, 10, 20, 45)',
            'height': 'mapData(degree, 0, 10, 20, 45)'
          }
        },
        {
          selector: 'node[type="paper"]',
          style: {
            'background-color': '#E8923A',
            'shape': 'diamond',
            'label': 'data(label)',
            'font-size': '9px',
            'text-valign': 'bottom',
            'text-margin-y': '5px',
            'width': 'mapData(degree, 0, 10, 20, 45)',
            'height': 'mapData(degree, 0, 10, 20, 45)'
          }
        },
        {
          selector: 'node[category="Poster"]',
          style: {
            'background-color': '#9B59B6'
          }
        },
        {
          selector: 'edge',
          style: {
            'line-color': '#95A5A6',
            'curve-style': 'bezier',
            'width': 'mapData(weight, 1, 5, 1, 8)'
          }
        },
        {
          selector: 'node.highlighted',
          style: {
            'border-width': 3,
            'border-color': '#ff6b6b'
          }
        },
        {
          selector: '.dimmed',
          style: {
            'opacity': 0.25
          }
        }
      ];

      function escapeHtml(str) {
        if (str === undefined || str === null) return '';
        return String(str).replace(/&/g, '&amp;')
                          .replace(/</g, '&lt;')
                          .replace(/>/g, '&gt;')
                          .replace(/"/g, '&quot;');
      }

      function nodeTooltip(node) {
        const data = node.data();
        let html = '<div><small>' + data.type + '</small></div>';
        html += '<div><b>' + escapeHtml(data.label) + '</b></div>';
        if (data.category) html += '<div>' + escapeHtml(data.category) + '</div>';
        if (data.participants) html += '<div>' + escapeHtml(data.participants) + '</div>';
        html += '<div>Connections: ' + data.degree + '</div>';
        return html;
      }

      function edgeTooltip(edge) {
        const data = edge.data();
        return '<div><b>' + escapeHtml(data.source) + ' – ' + escapeHtml(data.target) + '</b></div>' +
               '<div>Weight: ' + data.weight + '</div>';
      }

      function showTooltip(evt, content) {
        const pos = evt.originalEvent;
        tooltip.innerHTML = content;
        tooltip.style.display = 'block';
        tooltip.style.left = (pos.pageX + 15) + 'px';
        tooltip.style.top = (pos.pageY + 15) + 'px';
      }

      function drawGraph(containerID, elements) {
        const container = document.getElementById(containerID);
        if (!elements || elements.nodes.length === 0) {
          container.innerHTML = '<p class="empty">No data for these options.</p>';
          return;
        }
        container.innerHTML = '';
        const cy = cytoscape({
          container: container,
          elements: elements,
          style: graphStyle,
          layout: { name: layout, animate: false, nodeRepulsion: 8000, idealEdgeLength: 100 }
        });
        cy.on('mouseover', 'node', function(evt) { showTooltip(evt, nodeTooltip(evt.target)); });
        cy.on('mouseover', 'edge', function(evt) { showTooltip(evt, edgeTooltip(evt.target)); });
        cy.on('mouseout', 'node, edge', function() { tooltip.style.display = 'none'; });
        cy.on('tap', 'node', function(evt) {
          const neighborhood = evt.target.closedNeighborhood();
          cy.elements().removeClass('highlighted dimmed');
          neighborhood.nodes().addClass('highlighted');
          cy.elements().not(neighborhood).addClass('dimmed');
        });
        cy.on('tap', function(evt) {
          if (evt.target === cy) cy.elements().removeClass('highlighted dimmed');
        });
      }

      function drawBars(containerID, scores, title) {
        const data = [{
          type: 'bar',
          x: scores.map(function(s) { return s.label; }),
          y: scores.map(function(s) { return s.value; })
        }];
        Plotly.react(containerID, data, {
          yaxis: { title: title },
          xaxis: { title: 'Person' },
          margin: { t: 20 }
        }, { displayModeBar: false });
      }

      function drawList(records) {
        const list = document.getElementById('paper-list');
        list.innerHTML = records.map(function(r) {
          return '<li>' + escapeHtml([r.title, r.category].concat(r.participants).join(', ')) + '</li>';
        }).join('');
      }

      function draw(model) {
        const opts = model.options || [];
        checkboxes.forEach(function(cb) {
          cb.checked = opts.indexOf(cb.value) >= 0;
          cb.disabled = !live;
        });
        document.getElementById('stats').textContent =
          model.stats.records + ' records, ' + model.stats.people + ' people, ' +
          model.stats.collaborations + ' collaborations';
        drawGraph('people-graph', model.people);
        drawGraph('paper-graph', model.papers);
        drawGraph('bipartite-graph', model.bipartite);
        drawList(model.paper_list || []);
        drawBars('betweenness', model.betweenness || [], 'Betweenness Centrality');
        drawBars('closeness', model.closeness || [], 'Closeness Centrality');
      }

      checkboxes.forEach(function(cb) {
        cb.addEventListener('change', function() {
          if (!live) return;
          const params = new URLSearchParams();
          checkboxes.forEach(function(c) { if (c.checked) params.append('options', c.value); });
          fetch(renderPath + '?' + params.toString())
            .then(function(resp) {
              if (!resp.ok) throw new Error('render failed: ' + resp.status);
              return resp.json();
            })
            .then(draw)
            .catch(function(err) { console.error(err); });
        });
      });

      draw({{.ModelJSON}});
    })();
  </script>
</body>
</html>`
