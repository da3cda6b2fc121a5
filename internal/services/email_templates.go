package services

const transactionalEmailHTML = `<!DOCTYPE html>
<html>
<head>
<style>
body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, Helvetica, Arial, sans-serif; line-height: 1.6; color: #1f2937; background-color: #f8f7f4; margin: 0; padding: 20px; }
.container { padding: 20px; max-width: 600px; margin: 20px auto; background-color: #ffffff; border: 1px solid #e5e0d8; border-radius: 8px; }
.header { font-size: 24px; font-weight: bold; color: #b08d57; margin-bottom: 15px; }
.content { padding: 30px; }
.button { display: inline-block; padding: 12px 28px; background-color: #b08d57; color: #ffffff; border-radius: 5px; text-decoration: none; font-weight: bold; margin: 20px 0; }
.footer { margin-top: 20px; font-size: 12px; color: #6b7280; text-align: center; }
p { margin-bottom: 1em; }
</style>
</head>
<body>
  <div class="container">
    <div class="header">
      <h1>%s</h1>
    </div>
    <div class="content">
      %s
    </div>
    <div class="footer">
      © %d Luxe Property Analysis. All rights reserved.
    </div>
  </div>
</body>
</html>`
