package dom

// DefaultPage satisfies every element the TopN and Search widgets bind to.
const DefaultPage = `<!DOCTYPE html>
<html>
<head><title>Go Links</title></head>
<body>
<section class="top-n">
  <nav id="days-nav">
    <button class="selected" data-days="1">Today</button>
    <button data-days="7">Week</button>
    <button data-days="30">Month</button>
  </nav>
  <div class="top-n-results"></div>
</section>
<section class="search-container">
  <form id="search-form">
    <input type="text" id="search-term" value="">
    <button type="submit">Search</button>
  </form>
  <div class="search-results"></div>
</section>
</body>
</html>
`
