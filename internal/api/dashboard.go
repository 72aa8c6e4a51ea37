package api

import "net/http"

func (h *Handler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(dashboardHTML))
}

// dashboardHTML polls the public endpoints; it needs no admin token.
const dashboardHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Tourism CMS Dashboard</title>
<style>
  :root {
    --bg: #0d1117;
    --surface: #161b22;
    --border: #30363d;
    --text: #e6edf3;
    --text-dim: #8b949e;
    --accent: #58a6ff;
    --green: #3fb950;
    --yellow: #d29922;
  }
  * { box-sizing: border-box; margin: 0; padding: 0; }
  body {
    font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Helvetica, Arial, sans-serif;
    background: var(--bg);
    color: var(--text);
    font-size: 14px;
    line-height: 1.5;
    padding: 16px;
  }
  header {
    display: flex;
    align-items: center;
    justify-content: space-between;
    margin-bottom: 16px;
    padding-bottom: 12px;
    border-bottom: 1px solid var(--border);
  }
  header h1 { font-size: 20px; font-weight: 600; }
  header h1 span { color: var(--accent); }
  .meta { font-size: 12px; color: var(--text-dim); }
  .meta .live { color: var(--green); }
  .grid { display: grid; grid-template-columns: repeat(auto-fit, minmax(320px, 1fr)); gap: 16px; }
  .panel { background: var(--surface); border: 1px solid var(--border); border-radius: 6px; padding: 12px; }
  .panel h2 { font-size: 14px; margin-bottom: 8px; color: var(--text-dim); text-transform: uppercase; letter-spacing: .04em; }
  .panel h2 .count { color: var(--accent); margin-left: 6px; }
  ul { list-style: none; }
  li { padding: 4px 0; border-bottom: 1px solid var(--border); display: flex; justify-content: space-between; gap: 8px; }
  li:last-child { border-bottom: none; }
  .tag { font-size: 11px; color: var(--text-dim); }
  .star { color: var(--yellow); }
  .empty { color: var(--text-dim); font-style: italic; }
</style>
</head>
<body>
<header>
  <h1><span id="site">Tourism</span> CMS</h1>
  <div class="meta">revision <span id="rev">-</span> &middot; <span id="src">-</span> &middot; <span class="live" id="updated">loading</span></div>
</header>
<div class="grid">
  <div class="panel"><h2>Destinations<span class="count" id="n-destinations">0</span></h2><ul id="destinations"></ul></div>
  <div class="panel"><h2>Experiences<span class="count" id="n-experiences">0</span></h2><ul id="experiences"></ul></div>
  <div class="panel"><h2>Testimonials<span class="count" id="n-testimonials">0</span></h2><ul id="testimonials"></ul></div>
  <div class="panel"><h2>Gallery<span class="count" id="n-gallery">0</span></h2><ul id="gallery"></ul></div>
</div>
<script>
function esc(s) {
  return String(s == null ? '' : s).replace(/[&<>"']/g, c => ({'&':'&amp;','<':'&lt;','>':'&gt;','"':'&quot;',"'":'&#39;'}[c]));
}
function fill(id, items, render) {
  document.getElementById('n-' + id).textContent = items.length;
  const ul = document.getElementById(id);
  ul.innerHTML = items.length ? items.map(render).join('') : '<li class="empty">none</li>';
}
async function get(path) {
  const r = await fetch(path);
  if (!r.ok) throw new Error(path + ': ' + r.status);
  return r.json();
}
async function refresh() {
  try {
    const [health, settings, destinations, experiences, testimonials, gallery] = await Promise.all([
      get('/health'), get('/api/settings'), get('/api/destinations'),
      get('/api/experiences'), get('/api/testimonials'), get('/api/gallery'),
    ]);
    document.getElementById('site').textContent = settings.siteName || 'Tourism';
    document.getElementById('rev').textContent = health.revision;
    document.getElementById('src').textContent = health.source + (health.dirty ? ' (unsaved)' : '');
    fill('destinations', destinations, d =>
      '<li><span>' + esc(d.name) + (d.featured ? ' <span class="star">&#9733;</span>' : '') + '</span><span class="tag">' + esc(d.location) + ' &middot; ' + esc(d.category) + '</span></li>');
    fill('experiences', experiences, e =>
      '<li><span>' + esc(e.name) + '</span><span class="tag">' + esc(e.difficulty) + ' &middot; ' + esc(e.duration) + '</span></li>');
    fill('testimonials', testimonials, t =>
      '<li><span>' + esc(t.name) + '</span><span class="tag">' + '&#9733;'.repeat(t.rating || 0) + ' ' + esc(t.date) + '</span></li>');
    fill('gallery', gallery, g =>
      '<li><span>' + esc(g.title) + '</span><span class="tag">' + esc(g.category) + '</span></li>');
    document.getElementById('updated').textContent = 'updated ' + new Date().toLocaleTimeString();
  } catch (err) {
    document.getElementById('updated').textContent = String(err);
  }
}
refresh();
setInterval(refresh, 5000);
</script>
</body>
</html>
`
